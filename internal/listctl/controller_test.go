package listctl

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"
)

type row struct {
	ID int
}

// sliceSource serves pages out of a fixed in-memory data set, counting calls.
func sliceSource(total int) (Source[row], *int32, *int32) {
	data := make([]row, total)
	for i := range data {
		data[i] = row{ID: i + 1}
	}
	var listCalls, searchCalls int32

	pageOf := func(q gateway.ListQuery) gateway.Page[row] {
		start := (q.Page - 1) * q.PerPage
		if start > len(data) {
			start = len(data)
		}
		end := start + q.PerPage
		if end > len(data) {
			end = len(data)
		}
		rows := make([]row, end-start)
		copy(rows, data[start:end])
		return gateway.Page[row]{
			Success: true,
			Data:    rows,
			Pagination: models.Pagination{
				CurrentPage: q.Page,
				PerPage:     q.PerPage,
				Total:       len(data),
			},
		}
	}

	return Source[row]{
		List: func(_ context.Context, q gateway.ListQuery) gateway.Page[row] {
			atomic.AddInt32(&listCalls, 1)
			return pageOf(q)
		},
		Search: func(_ context.Context, term string, q gateway.ListQuery) gateway.Page[row] {
			atomic.AddInt32(&searchCalls, 1)
			return pageOf(q)
		},
	}, &listCalls, &searchCalls
}

func TestLoadPaginates(t *testing.T) {
	source, _, _ := sliceSource(25)
	c := New(source)

	view := c.SetPage(context.Background(), 3)
	if len(view.Rows) != 5 {
		t.Fatalf("page 3 rows = %d, want 5", len(view.Rows))
	}
	if view.Total != 25 {
		t.Fatalf("total = %d, want 25", view.Total)
	}
	if view.Rows[0].ID != 21 {
		t.Fatalf("first row on page 3 = %d, want 21", view.Rows[0].ID)
	}
}

func TestLoadTwiceIsIdempotent(t *testing.T) {
	source, _, _ := sliceSource(12)
	c := New(source)

	first := c.Load(context.Background())
	second := c.Load(context.Background())

	if len(first.Rows) != len(second.Rows) || first.Total != second.Total || first.Page != second.Page {
		t.Fatalf("repeated load changed the view: %+v vs %+v", first, second)
	}
}

func TestSetTermDebouncesBurst(t *testing.T) {
	source, _, searchCalls := sliceSource(10)
	c := New(source)
	c.SetDebounce(20 * time.Millisecond)

	c.SetTerm(context.Background(), "a")
	c.SetTerm(context.Background(), "ab")
	c.SetTerm(context.Background(), "abc")

	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(searchCalls); got != 1 {
		t.Fatalf("search fired %d times for the burst, want 1", got)
	}
	if view := c.View(); view.Term != "abc" {
		t.Fatalf("term = %q, want %q", view.Term, "abc")
	}
}

func TestClearingTermReloadsImmediately(t *testing.T) {
	source, listCalls, searchCalls := sliceSource(10)
	c := New(source)
	c.SetDebounce(time.Hour) // a pending search must never fire

	c.SetTerm(context.Background(), "abc")
	view := c.SetTerm(context.Background(), "")

	if got := atomic.LoadInt32(listCalls); got != 1 {
		t.Fatalf("list fired %d times, want 1", got)
	}
	if got := atomic.LoadInt32(searchCalls); got != 0 {
		t.Fatalf("search fired %d times, want 0", got)
	}
	if view.Term != "" || view.Page != 1 {
		t.Fatalf("view after clearing = term %q page %d, want empty term on page 1", view.Term, view.Page)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	source := Source[row]{
		List: func(_ context.Context, q gateway.ListQuery) gateway.Page[row] {
			if q.Page == 1 {
				close(started)
				<-release // the slow first request
				return gateway.Page[row]{Success: true, Data: []row{{ID: 1}}, Pagination: models.Pagination{CurrentPage: 1, Total: 99}}
			}
			return gateway.Page[row]{Success: true, Data: []row{{ID: 21}, {ID: 22}}, Pagination: models.Pagination{CurrentPage: q.Page, Total: 2}}
		},
	}
	c := New(source)

	done := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(done)
	}()

	<-started
	c.SetPage(context.Background(), 2)
	close(release)
	<-done

	view := c.View()
	if view.Total != 2 {
		t.Fatalf("stale response overwrote the view: total = %d, want 2", view.Total)
	}
	if len(view.Rows) != 2 || view.Rows[0].ID != 21 {
		t.Fatalf("rows = %+v, want the page 2 rows", view.Rows)
	}
}

func TestMutateReloadsOnlyOnSuccess(t *testing.T) {
	source, listCalls, _ := sliceSource(5)
	c := New(source)

	c.Mutate(context.Background(), func(context.Context) gateway.Result {
		return gateway.Result{Success: false, Message: "nope"}
	})
	if got := atomic.LoadInt32(listCalls); got != 0 {
		t.Fatalf("failed mutation reloaded the view %d times", got)
	}

	c.Mutate(context.Background(), func(context.Context) gateway.Result {
		return gateway.Result{Success: true}
	})
	if got := atomic.LoadInt32(listCalls); got != 1 {
		t.Fatalf("successful mutation reloaded %d times, want 1", got)
	}
}
