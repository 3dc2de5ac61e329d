package records

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/swimrecords/internal/types"
)

// Group partitions performances into buckets by key. Keys keep the order in
// which they were first seen and each bucket keeps input order. Every
// performance lands in exactly one bucket; unknown event codes simply form
// their own bucket.
func Group[K comparable](perfs []types.Performance, key func(types.Performance) K) *orderedmap.OrderedMap[K, []types.Performance] {
	groups := orderedmap.NewOrderedMap[K, []types.Performance]()
	for _, p := range perfs {
		k := key(p)
		bucket, _ := groups.Get(k)
		groups.Set(k, append(bucket, p))
	}
	return groups
}

// GroupSchool partitions performances into school-record lineages.
func GroupSchool(perfs []types.Performance) *orderedmap.OrderedMap[LineageKey, []types.Performance] {
	return Group(perfs, SchoolKey)
}

// GroupPersonal partitions performances into personal-record lineages.
func GroupPersonal(perfs []types.Performance) *orderedmap.OrderedMap[PersonalKey, []types.Performance] {
	return Group(perfs, PersonalKeyOf)
}
