// internal/engine/walker_test.go
package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://quotes.toscrape.com"

func newTestWalker(sess *fakeSession, fallback bool, opts WalkOptions) *Walker {
	logger := zerolog.Nop()
	opts.Logger = &logger
	return NewWalker(&fakeLauncher{session: sess}, NewExtractor(Selectors{}, fallback).WithLogger(logger), opts)
}

func threePages() map[string]string {
	return map[string]string{
		base + "/": pageHTML(nextLink("/page/2/"),
			quoteHTML("q1", "A", "t1"),
			quoteHTML("q2", "B"),
		),
		base + "/page/2/": pageHTML(nextLink("/page/3/"),
			quoteHTML("q3", "C", "t2", "t3"),
		),
		base + "/page/3/": pageHTML("",
			quoteHTML("q4", "D"),
			quoteHTML("q5", "E", "t4"),
		),
	}
}

func quotesOf(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Quote)
	}
	return out
}

func TestWalker_AllPagesInOrder(t *testing.T) {
	sess := &fakeSession{pages: threePages()}
	var reports []PageReport
	w := newTestWalker(sess, true, WalkOptions{OnPage: func(r PageReport) { reports = append(reports, r) }})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.NoError(t, out.Err)
	assert.Equal(t, 3, out.Pages)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, quotesOf(out.Records))
	assert.True(t, out.Released)
	assert.Equal(t, 1, sess.closed)

	want := []PageReport{
		{Number: 1, URL: base + "/", Records: 2, Total: 2},
		{Number: 2, URL: base + "/page/2/", Records: 1, Total: 3},
		{Number: 3, URL: base + "/page/3/", Records: 2, Total: 5},
	}
	if diff := cmp.Diff(want, reports); diff != "" {
		t.Errorf("page reports mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_TimeoutKeepsEarlierPages(t *testing.T) {
	sess := &fakeSession{
		pages: threePages(),
		errs: map[string]error{
			base + "/page/3/": PageLoadTimeoutError(base+"/page/3/", context.DeadlineExceeded),
		},
	}
	w := newTestWalker(sess, true, WalkOptions{})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, ErrPageLoadTimeout)
	assert.Equal(t, 2, out.Pages)
	assert.Equal(t, []string{"q1", "q2", "q3"}, quotesOf(out.Records))
	assert.True(t, out.Released)
	assert.Equal(t, 1, sess.closed)
}

func TestWalker_TimeoutOnFirstPage(t *testing.T) {
	sess := &fakeSession{
		errs: map[string]error{base + "/": PageLoadTimeoutError(base+"/", context.DeadlineExceeded)},
	}
	w := newTestWalker(sess, true, WalkOptions{})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.NotNil(t, out.Records)
	assert.Empty(t, out.Records)
	assert.Equal(t, 0, out.Pages)
	assert.True(t, out.Released)
	assert.Equal(t, 1, sess.closed)
}

func TestWalker_LaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: DriverResolutionError("no browser", errors.New("not found"))}
	logger := zerolog.Nop()

	out, err := NewWalker(l, NewExtractor(Selectors{}, true), WalkOptions{Logger: &logger}).Walk(context.Background(), base+"/")

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrDriverResolution)
}

func TestWalker_FirstPageOnly(t *testing.T) {
	sess := &fakeSession{pages: threePages()}
	w := newTestWalker(sess, true, WalkOptions{MaxPages: 1})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, []string{"q1", "q2"}, quotesOf(out.Records))
	assert.Equal(t, []string{base + "/"}, sess.loads)
}

func TestWalker_LegacyFallbackStopsAfterPageTwo(t *testing.T) {
	// Every page carries a next element without a target
	pager := `<li class="next"><a>Next</a></li>`
	sess := &fakeSession{pages: map[string]string{
		base + "/":        pageHTML(pager, quoteHTML("q1", "A")),
		base + "/page/2/": pageHTML(pager, quoteHTML("q2", "B")),
	}}
	w := newTestWalker(sess, true, WalkOptions{})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, []string{"q1", "q2"}, quotesOf(out.Records))
	assert.Equal(t, []string{base + "/", base + "/page/2/"}, sess.loads)
}

func TestWalker_RevisitGuard(t *testing.T) {
	sess := &fakeSession{pages: map[string]string{
		base + "/":        pageHTML(nextLink("/page/2/"), quoteHTML("q1", "A")),
		base + "/page/2/": pageHTML(nextLink("/#top"), quoteHTML("q2", "B")),
	}}
	w := newTestWalker(sess, true, WalkOptions{})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, []string{"q1", "q2"}, quotesOf(out.Records))
	assert.Len(t, sess.loads, 2)
}

func TestWalker_LegacyFallbackDisabled(t *testing.T) {
	sess := &fakeSession{pages: map[string]string{
		base + "/": pageHTML(`<li class="next"><a>Next</a></li>`, quoteHTML("q1", "A")),
	}}
	w := newTestWalker(sess, false, WalkOptions{})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, 1, out.Pages)
	assert.Len(t, sess.loads, 1)
}

func TestWalker_AllowGuard(t *testing.T) {
	sess := &fakeSession{pages: threePages()}
	w := newTestWalker(sess, true, WalkOptions{
		Allow: func(u string) bool { return u != base+"/page/2/" },
	})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, []string{"q1", "q2"}, quotesOf(out.Records))
	assert.Equal(t, []string{base + "/"}, out.Visited)
}

func TestWalker_Canceled(t *testing.T) {
	sess := &fakeSession{pages: threePages()}
	ctx, cancel := context.WithCancel(context.Background())
	w := newTestWalker(sess, true, WalkOptions{
		OnPage: func(PageReport) { cancel() },
	})

	out, err := w.Walk(ctx, base+"/")

	require.NoError(t, err)
	assert.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Equal(t, []string{"q1", "q2"}, quotesOf(out.Records))
	assert.Equal(t, 1, sess.closed)
}

func TestWalker_PanicInCallbackKeepsRecords(t *testing.T) {
	sess := &fakeSession{pages: threePages()}
	w := newTestWalker(sess, true, WalkOptions{OnPage: func(r PageReport) {
		if r.Number == 2 {
			panic("progress writer closed")
		}
	}})

	out, err := w.Walk(context.Background(), base+"/")

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, StateFailed, out.State)
	assert.ErrorContains(t, out.Err, "progress writer closed")
	assert.Equal(t, []string{"q1", "q2", "q3"}, quotesOf(out.Records))
	assert.True(t, out.Released)
	assert.Equal(t, 1, sess.closed)
}

func TestWalker_DefaultWaitTimeout(t *testing.T) {
	w := NewWalker(&fakeLauncher{}, NewExtractor(Selectors{}, true), WalkOptions{})
	assert.Equal(t, 15*time.Second, w.opts.WaitTimeout)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "SeekingNext", StateSeekingNext.String())
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateLoading.Terminal())
}
