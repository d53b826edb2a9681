package combine

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Family groups variants by the technique they demonstrate.
type Family string

const (
	FamilyBaseline    Family = "baseline"
	FamilyAccess      Family = "access"
	FamilyUnroll      Family = "unroll"
	FamilyParallel    Family = "parallel"
	FamilyReassociate Family = "reassociate"
)

var familyOrder = []Family{FamilyBaseline, FamilyAccess, FamilyUnroll, FamilyParallel, FamilyReassociate}

// Func sums a sequence.
type Func func([]int32) int64

// Variant is one benchmarked implementation. Name doubles as its checkpoint
// label in timing reports.
type Variant struct {
	Name        string `json:"name"`
	Family      Family `json:"family"`
	Description string `json:"description"`
	Fn          Func   `json:"-"`
}

// Reference is the implementation every other variant is checked against.
var Reference Func = Trivial

var catalog = []Variant{
	{"trivial", FamilyBaseline, "index loop, len(v) in the condition", Trivial},
	{"trivial_bad", FamilyBaseline, "accumulates through a pointer out-parameter", trivialBad},
	{"outofloop", FamilyAccess, "length hoisted out of the loop", OutOfLoop},
	{"direct_access", FamilyAccess, "range loop without index arithmetic", DirectAccess},
	{"unroll_2", FamilyUnroll, "2-way unroll, one accumulator", Unroll2},
	{"unroll_3", FamilyUnroll, "3-way unroll, one accumulator", Unroll3},
	{"unroll_4", FamilyUnroll, "4-way unroll, one accumulator", Unroll4},
	{"auto_unroll", FamilyUnroll, "8-wide resliced window, bounds checks eliminated", AutoUnroll},
	{"u_2_p_2", FamilyParallel, "2-way unroll, 2 accumulators", Unroll2Parallel2},
	{"u_3_p_3", FamilyParallel, "3-way unroll, 3 accumulators", Unroll3Parallel3},
	{"u_2_reasso", FamilyReassociate, "2-way unroll, pair added before the running sum", Unroll2Reassociate},
	{"final", FamilyReassociate, "4-way unroll, reassociated", Final},
}

func trivialBad(v []int32) int64 {
	var result int64
	TrivialBad(v, &result)
	return result
}

// Variants returns the catalog in benchmark order.
func Variants() []Variant {
	out := make([]Variant, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the names of vs in order.
func Names(vs []Variant) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}

func Lookup(name string) (Variant, bool) {
	for _, v := range catalog {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Select resolves names against the catalog, keeping the given order.
func Select(names []string) ([]Variant, error) {
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		v, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown variant %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}

// Sequence returns the consecutive integers 0..n-1.
func Sequence(n int) []int32 {
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(i)
	}
	return v
}

// Expected returns the sum of Sequence(n), n(n-1)/2.
func Expected(n int) int64 {
	if n <= 0 {
		return 0
	}
	return int64(n) * int64(n-1) / 2
}

// Tree lays out vs by family for display.
func Tree(vs []Variant) treeprint.Tree {
	tree := treeprint.NewWithRoot("combine")
	byFamily := make(map[Family][]Variant)
	var extra []Family
	for _, v := range vs {
		if _, ok := byFamily[v.Family]; !ok && !knownFamily(v.Family) {
			extra = append(extra, v.Family)
		}
		byFamily[v.Family] = append(byFamily[v.Family], v)
	}
	for _, f := range append(append([]Family{}, familyOrder...), extra...) {
		members := byFamily[f]
		if len(members) == 0 {
			continue
		}
		branch := tree.AddBranch(string(f))
		for _, v := range members {
			branch.AddMetaNode(v.Name, v.Description)
		}
	}
	return tree
}

func knownFamily(f Family) bool {
	for _, k := range familyOrder {
		if k == f {
			return true
		}
	}
	return false
}
