// Package combine holds alternative implementations of one operation, summing
// a sequence of int32 into an int64, that differ only in loop shape.
//
// Every variant returns the exact sum for every input length, including the
// empty slice. Unrolled variants finish the remainder with a scalar tail loop.
package combine

// Trivial indexes the slice and re-evaluates len(v) on every iteration.
func Trivial(v []int32) int64 {
	var sum int64
	for i := 0; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}

// TrivialBad accumulates directly into the caller's result, forcing a memory
// round trip per element because result may alias other memory.
func TrivialBad(v []int32, result *int64) {
	for i := 0; i < len(v); i++ {
		*result += int64(v[i])
	}
}

// OutOfLoop hoists the length out of the loop condition.
func OutOfLoop(v []int32) int64 {
	var sum int64
	n := len(v)
	for i := 0; i < n; i++ {
		sum += int64(v[i])
	}
	return sum
}

// DirectAccess walks the elements with range, which needs no index arithmetic
// and no bounds checks.
func DirectAccess(v []int32) int64 {
	var sum int64
	for _, x := range v {
		sum += int64(x)
	}
	return sum
}

func Unroll2(v []int32) int64 {
	var sum int64
	i := 0
	for ; i+1 < len(v); i += 2 {
		sum = sum + int64(v[i]) + int64(v[i+1])
	}
	for ; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}

func Unroll3(v []int32) int64 {
	var sum int64
	i := 0
	for ; i+2 < len(v); i += 3 {
		sum = sum + int64(v[i]) + int64(v[i+1]) + int64(v[i+2])
	}
	for ; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}

func Unroll4(v []int32) int64 {
	var sum int64
	i := 0
	for ; i+3 < len(v); i += 4 {
		sum = sum + int64(v[i]) + int64(v[i+1]) + int64(v[i+2]) + int64(v[i+3])
	}
	for ; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}

// AutoUnroll reslices a fixed-size window so the compiler can prove every
// access in bounds and drop the checks.
func AutoUnroll(v []int32) int64 {
	var sum int64
	for len(v) >= 8 {
		w := v[:8:8]
		sum += int64(w[0]) + int64(w[1]) + int64(w[2]) + int64(w[3]) +
			int64(w[4]) + int64(w[5]) + int64(w[6]) + int64(w[7])
		v = v[8:]
	}
	for _, x := range v {
		sum += int64(x)
	}
	return sum
}

// Unroll2Parallel2 keeps two independent accumulators so consecutive adds do
// not wait on each other.
func Unroll2Parallel2(v []int32) int64 {
	var sum1, sum2 int64
	i := 0
	for ; i+1 < len(v); i += 2 {
		sum1 = sum1 + int64(v[i])
		sum2 = sum2 + int64(v[i+1])
	}
	for ; i < len(v); i++ {
		sum1 += int64(v[i])
	}
	return sum1 + sum2
}

func Unroll3Parallel3(v []int32) int64 {
	var sum1, sum2, sum3 int64
	i := 0
	for ; i+2 < len(v); i += 3 {
		sum1 = sum1 + int64(v[i])
		sum2 = sum2 + int64(v[i+1])
		sum3 = sum3 + int64(v[i+2])
	}
	for ; i < len(v); i++ {
		sum1 += int64(v[i])
	}
	return sum1 + sum2 + sum3
}

// Unroll2Reassociate adds the pair first and the running sum last, shortening
// the dependency chain on sum to one add per pair.
func Unroll2Reassociate(v []int32) int64 {
	var sum int64
	i := 0
	for ; i+1 < len(v); i += 2 {
		sum += int64(v[i]) + int64(v[i+1])
	}
	for ; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}

// Final is the 4-way reassociated unroll.
func Final(v []int32) int64 {
	var sum int64
	i := 0
	for ; i+3 < len(v); i += 4 {
		sum += int64(v[i]) + int64(v[i+1]) + int64(v[i+2]) + int64(v[i+3])
	}
	for ; i < len(v); i++ {
		sum += int64(v[i])
	}
	return sum
}
