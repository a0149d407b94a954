package validator_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salaryengine/internal/validator"
)

func TestDebouncer_OnlyLatestRuns(t *testing.T) {
	d := validator.NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var ran []int
	done := make(chan struct{})
	for i := 1; i <= 5; i++ {
		i := i
		d.Schedule("salary_amount", func() {
			mu.Lock()
			ran = append(ran, i)
			mu.Unlock()
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced task did not run")
	}
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, ran)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := validator.NewDebouncer(time.Hour)
	defer d.Stop()

	var order []string
	d.Schedule("b", func() { order = append(order, "b") })
	d.Schedule("a", func() { order = append(order, "a1") })
	d.Schedule("a", func() { order = append(order, "a2") })
	assert.Equal(t, 2, d.Pending())

	d.Flush()
	assert.Equal(t, []string{"a2", "b"}, order)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := validator.NewDebouncer(time.Hour)
	var count int32
	d.Schedule("a", func() { atomic.AddInt32(&count, 1) })

	assert.True(t, d.Cancel("a"))
	assert.False(t, d.Cancel("a"))
	d.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}

func TestDebouncer_ZeroWindowRunsInline(t *testing.T) {
	d := validator.NewDebouncer(0)
	ran := false
	assert.True(t, d.Schedule("a", func() { ran = true }))
	assert.True(t, ran)
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_StopRejects(t *testing.T) {
	d := validator.NewDebouncer(time.Hour)
	d.Schedule("a", func() {})
	d.Stop()
	assert.Equal(t, 0, d.Pending())
	assert.False(t, d.Schedule("a", func() {}))
}
