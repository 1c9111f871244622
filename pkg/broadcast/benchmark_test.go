package broadcast_test

import (
	"fmt"
	"testing"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

func BenchmarkSend(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("subscribers=%d", n), func(b *testing.B) {
			bc := broadcast.New[int]()
			receivers := make([]*broadcast.Receiver[int], n)
			for i := range receivers {
				rx, err := bc.Subscribe()
				if err != nil {
					b.Fatal(err)
				}
				receivers[i] = rx
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := bc.Send(i); err != nil {
					b.Fatal(err)
				}
				for _, rx := range receivers {
					rx.TryRecv()
				}
			}
		})
	}
}

func BenchmarkSendParallel(b *testing.B) {
	bc := broadcast.New[int]()
	rx, err := bc.Subscribe()
	if err != nil {
		b.Fatal(err)
	}
	defer rx.Close()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		handle := bc.Clone()
		for pb.Next() {
			if err := handle.Send(1); err != nil {
				b.Error(err)
				return
			}
			rx.TryRecv()
		}
	})
}
