package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendBounded_DropsOldestFirst(t *testing.T) {
	var log []Event
	for i := 0; i < 7; i++ {
		log = AppendBounded(log, Event{ID: fmt.Sprint(i)}, 5)
	}
	require.Len(t, log, 5)
	assert.Equal(t, "2", log[0].ID)
	assert.Equal(t, "6", log[4].ID)
}

func TestAppendBounded_UnderLimit(t *testing.T) {
	log := AppendBounded(nil, Event{ID: "a"}, MaxRecordHistory)
	assert.Len(t, log, 1)
}
