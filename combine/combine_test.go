package combine

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naiveSum(v []int32) int64 {
	var s int64
	for _, x := range v {
		s += int64(x)
	}
	return s
}

func TestVariantsEmpty(t *testing.T) {
	for _, v := range Variants() {
		assert.Equal(t, int64(0), v.Fn(nil), v.Name)
		assert.Equal(t, int64(0), v.Fn([]int32{}), v.Name)
	}
}

// Lengths around every unroll width exercise the tail loops.
func TestVariantsAllLengths(t *testing.T) {
	for n := 0; n <= 40; n++ {
		seq := Sequence(n)
		want := Expected(n)
		require.Equal(t, want, naiveSum(seq))
		for _, v := range Variants() {
			assert.Equal(t, want, v.Fn(seq), "%s n=%d", v.Name, n)
		}
	}
}

func TestVariantsRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		seq := make([]int32, rng.Intn(257))
		for i := range seq {
			seq[i] = rng.Int31() - math.MaxInt32/2
		}
		want := naiveSum(seq)
		for _, v := range Variants() {
			assert.Equal(t, want, v.Fn(seq), "%s len=%d", v.Name, len(seq))
		}
	}
}

func TestExtremeValuesDoNotOverflow(t *testing.T) {
	seq := []int32{math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32}
	want := int64(math.MaxInt32) * 5
	for _, v := range Variants() {
		assert.Equal(t, want, v.Fn(seq), v.Name)
	}
}

func TestMillionElements(t *testing.T) {
	const n = 1000000
	assert.Equal(t, int64(499999500000), Expected(n))
	seq := Sequence(n)
	for _, v := range Variants() {
		assert.Equal(t, int64(499999500000), v.Fn(seq), v.Name)
	}
}

func TestTrivialBadAccumulates(t *testing.T) {
	result := int64(10)
	TrivialBad([]int32{1, 2, 3}, &result)
	assert.Equal(t, int64(16), result)
}

func TestExpected(t *testing.T) {
	assert.Equal(t, int64(0), Expected(-3))
	assert.Equal(t, int64(0), Expected(0))
	assert.Equal(t, int64(0), Expected(1))
	assert.Equal(t, int64(45), Expected(10))
}

func TestCatalog(t *testing.T) {
	vs := Variants()
	require.Len(t, vs, 12)
	assert.Equal(t, "trivial", vs[0].Name)
	assert.Equal(t, "final", vs[len(vs)-1].Name)

	seen := map[string]bool{}
	for _, v := range vs {
		assert.False(t, seen[v.Name], "duplicate %s", v.Name)
		seen[v.Name] = true
		assert.NotNil(t, v.Fn, v.Name)
		assert.NotEmpty(t, v.Description, v.Name)
	}

	// callers cannot mutate the catalog
	vs[0].Name = "changed"
	assert.Equal(t, "trivial", Variants()[0].Name)
}

func TestSelect(t *testing.T) {
	vs, err := Select([]string{"final", "trivial"})
	require.NoError(t, err)
	assert.Equal(t, []string{"final", "trivial"}, Names(vs))

	_, err = Select([]string{"trivial", "unroll_9"})
	assert.ErrorContains(t, err, "unroll_9")
}

func TestTree(t *testing.T) {
	out := Tree(Variants()).String()
	for _, f := range familyOrder {
		assert.Contains(t, out, string(f))
	}
	assert.Contains(t, out, "u_3_p_3")

	out = Tree([]Variant{{Name: "x", Family: "custom", Description: "d", Fn: Trivial}}).String()
	assert.Contains(t, out, "custom")
	assert.NotContains(t, out, string(FamilyUnroll))
}

func BenchmarkVariants(b *testing.B) {
	for _, size := range []int{1 << 10, 1 << 16, 1000000} {
		seq := Sequence(size)
		for _, v := range Variants() {
			b.Run(fmt.Sprintf("%s/%d", v.Name, size), func(b *testing.B) {
				b.SetBytes(int64(size * 4))
				var sink int64
				for i := 0; i < b.N; i++ {
					sink += v.Fn(seq)
				}
				_ = sink
			})
		}
	}
}
