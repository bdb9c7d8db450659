package commands

import (
	"fmt"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/gosuri/uiprogress/util/strutil"

	"github.com/vaultpost/vaultpost/internal/model"
)

// taskProgressBar renders polled task snapshots as a terminal progress bar.
// Update is safe to call from the poll loop goroutine.
type taskProgressBar struct {
	mu     sync.Mutex
	bar    *uiprogress.Bar
	label  string
	status string
}

// newTaskProgressBar starts the progress renderer with a single bar.
func newTaskProgressBar(label string) *taskProgressBar {
	b := &taskProgressBar{
		label:  label,
		status: "waiting",
	}

	bar := uiprogress.AddBar(100).AppendCompleted()
	bar.Width = 50
	bar.PrependFunc(func(_ *uiprogress.Bar) string {
		b.mu.Lock()
		defer b.mu.Unlock()
		return strutil.Resize(fmt.Sprintf("%s: %s", b.label, b.status), 30)
	})
	b.bar = bar

	uiprogress.Start()

	return b
}

// Update moves the bar to the task's reported progress.
func (b *taskProgressBar) Update(task model.Task) {
	b.mu.Lock()
	switch {
	case task.Progress >= 100:
		b.status = "finishing"
	case task.Progress == 0:
		b.status = "waiting"
	default:
		b.status = "working"
	}
	b.mu.Unlock()

	b.bar.Set(task.Progress)
}

// Done stops the renderer. Completed tasks fill the bar first.
func (b *taskProgressBar) Done(ok bool) {
	if ok {
		b.mu.Lock()
		b.status = "completed"
		b.mu.Unlock()
		b.bar.Set(100)
	} else {
		b.mu.Lock()
		b.status = "failed"
		b.mu.Unlock()
	}

	uiprogress.Stop()
	fmt.Println()
}
