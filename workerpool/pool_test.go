package workerpool

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		workers int
		fn      func(item string, index int) (string, error)
		want    []string
		wantErr string
	}{
		{
			name:    "preserves order across concurrent workers",
			items:   []string{"a", "b", "c", "d", "e"},
			workers: 3,
			fn: func(item string, index int) (string, error) {
				return strings.ToUpper(item) + strconv.Itoa(index), nil
			},
			want: []string{"A0", "B1", "C2", "D3", "E4"},
		},
		{
			name:    "zero workers treated as one",
			items:   []string{"x", "y"},
			workers: 0,
			fn: func(item string, index int) (string, error) {
				return item, nil
			},
			want: []string{"x", "y"},
		},
		{
			name:    "empty items returns nil without panicking",
			items:   nil,
			workers: 4,
			fn: func(item string, index int) (string, error) {
				t.Fatal("fn should not be called for empty items")
				return "", nil
			},
			want: nil,
		},
		{
			name:    "first error is surfaced",
			items:   []string{"ok", "bad", "ok"},
			workers: 2,
			fn: func(item string, index int) (string, error) {
				if item == "bad" {
					return "", fmt.Errorf("boom at %d", index)
				}
				return item, nil
			},
			wantErr: "boom at 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.items, tt.workers, tt.fn)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunSingleWorkerIsSequentialByIndex(t *testing.T) {
	var seen []int
	_, err := Run([]string{"1", "2", "3", "4"}, 1, func(item string, index int) (string, error) {
		seen = append(seen, index)
		return item, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}
