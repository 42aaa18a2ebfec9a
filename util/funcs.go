package util

import (
	"iter"

	"github.com/hashicorp/go-set/v3"
)

func FilterIter[A any](iter iter.Seq[A], keep func(A) bool) iter.Seq[A] {
	return func(yield func(A) bool) {
		for v := range iter {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

func SetFromSeq[V comparable](s iter.Seq[V], size int) *set.Set[V] {
	newSet := set.New[V](size)
	for item := range s {
		newSet.Insert(item)
	}
	return newSet
}
