// SPDX-License-Identifier: Apache-2.0

package list_test

import (
	"fmt"

	"github.com/go-logr/logr"

	arena "github.com/wundergraph/go-fixedarena"
	"github.com/wundergraph/go-fixedarena/list"
)

// Example fills a list backed by a ten element arena and shows that an
// eleventh element does not fit.
func Example() {
	l, err := list.New[int](arena.New[int](10, arena.WithLogger(logr.Discard())))
	if err != nil {
		panic(err)
	}
	defer l.Release()

	for i := 0; i < 10; i++ {
		if err := l.PushBack(i); err != nil {
			panic(err)
		}
	}
	fmt.Println(l.Values())

	fmt.Println(l.PushBack(10))

	// Output:
	// [0 1 2 3 4 5 6 7 8 9]
	// arena: ran out of capacity: capacity 10, used 10, requested 1
}

func ExampleList_PopBack() {
	l, _ := list.New[string](nil)
	defer l.Release()

	_ = l.PushBack("a")
	_ = l.PushBack("b")
	_ = l.PopBack()
	fmt.Println(l.Values(), l.Size())

	_ = l.PopBack()
	fmt.Println(l.Empty(), l.PopBack())

	// Output:
	// [a] 1
	// true list: container is empty
}
