package check

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastRequestsBasicOps(t *testing.T) {
	h := NewLastRequests(5)
	req1 := Request{Text: "msg1", UserID: 1}
	req2 := Request{Text: "msg2", UserID: 2}
	req3 := Request{Text: "msg3", UserID: 1}

	h.Push(req1)
	h.Push(req2)
	h.Push(req3)

	res := h.Last(3)
	require.Equal(t, 3, len(res))
	assert.Equal(t, req1, res[0])
	assert.Equal(t, req2, res[1])
	assert.Equal(t, req3, res[2])

	res = h.Last(2)
	require.Equal(t, 2, len(res))
	assert.Equal(t, req2, res[0], "keeps the most recent entries")
	assert.Equal(t, req3, res[1])
}

func TestLastRequestsOverflow(t *testing.T) {
	h := NewLastRequests(2)
	req1 := Request{Text: "msg1", UserID: 1}
	req2 := Request{Text: "msg2", UserID: 2}
	req3 := Request{Text: "msg3", UserID: 1}

	h.Push(req1)
	h.Push(req2)
	h.Push(req3)

	res := h.Last(3)
	require.Equal(t, 2, len(res))
	assert.Equal(t, req2, res[0])
	assert.Equal(t, req3, res[1])
}

func TestLastRequestsEmpty(t *testing.T) {
	h := NewLastRequests(5)
	assert.Empty(t, h.Last(1))
	assert.Empty(t, h.Last(0))
}

func TestLastRequestsMinimalSize(t *testing.T) {
	h := NewLastRequests(0)
	assert.Equal(t, 1, h.Size())
	h.Push(Request{Text: "msg1"})
	h.Push(Request{Text: "msg2"})
	res := h.Last(5)
	require.Equal(t, 1, len(res))
	assert.Equal(t, "msg2", res[0].Text)
}

func TestLastRequestsConcurrent(t *testing.T) {
	h := NewLastRequests(100)
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				h.Push(Request{Text: strings.Repeat("x", j%10)})
				h.Last(10)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Equal(t, 100, len(h.Last(100)))
}
