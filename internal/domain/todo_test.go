package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	t.Run("accepts bare calendar date", func(t *testing.T) {
		d, err := ParseDueDate("2020-01-01")
		require.NoError(t, err)
		assert.Equal(t, "2020-01-01", d.Raw())
		assert.Equal(t, 2020, d.Time().Year())
		assert.Equal(t, time.January, d.Time().Month())
	})

	t.Run("accepts RFC 3339", func(t *testing.T) {
		d, err := ParseDueDate("2099-01-01T12:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, "2099-01-01T12:30:00Z", d.Raw())
		assert.Equal(t, 12, d.Time().Hour())
	})

	t.Run("accepts fractional seconds", func(t *testing.T) {
		d, err := ParseDueDate("2099-01-01T12:30:00.123Z")
		require.NoError(t, err)
		assert.Equal(t, "2099-01-01T12:30:00.123Z", d.Raw())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDueDate("next tuesday")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})
}

func TestDueDateJSONPreservesRawForm(t *testing.T) {
	// The raw string feeds archive key derivation, so it must survive a
	// marshal/unmarshal cycle byte for byte.
	d, err := ParseDueDate("2020-01-01")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2020-01-01"`, string(data))

	var back DueDate
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "2020-01-01", back.Raw())
}

func TestDueDateUnmarshalRejectsNonString(t *testing.T) {
	var d DueDate
	err := json.Unmarshal([]byte(`12345`), &d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestTodoEventValidate(t *testing.T) {
	due, err := ParseDueDate("2099-01-01")
	require.NoError(t, err)

	valid := TodoEvent{
		Title:     "buy milk",
		DueDate:   due,
		Status:    TodoStatusOpen,
		UserEmail: "a@b.com",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*TodoEvent)
		wantErr error
	}{
		{"missing title", func(e *TodoEvent) { e.Title = "" }, ErrEmptyTitle},
		{"missing due date", func(e *TodoEvent) { e.DueDate = DueDate{} }, ErrEmptyDueDate},
		{"missing status", func(e *TodoEvent) { e.Status = "" }, ErrEmptyStatus},
		{"missing user email", func(e *TodoEvent) { e.UserEmail = "" }, ErrEmptyUserEmail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := valid
			tc.mutate(&ev)
			assert.ErrorIs(t, ev.Validate(), tc.wantErr)
		})
	}

	t.Run("description is optional", func(t *testing.T) {
		ev := valid
		ev.Description = ""
		assert.NoError(t, ev.Validate())
	})
}

func TestNewTodo(t *testing.T) {
	due := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	todo, err := NewTodo("buy milk", "2 liters", due, TodoStatusOpen, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, todo.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, todo.CreatedAt.IsZero())

	_, err = NewTodo("", "", due, TodoStatusOpen, "a@b.com")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestTodoEvent(t *testing.T) {
	due := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	todo, err := NewTodo("buy milk", "", due, TodoStatusOpen, "a@b.com")
	require.NoError(t, err)

	ev := todo.Event()
	assert.Equal(t, "buy milk", ev.Title)
	assert.Equal(t, "2099-01-01T00:00:00Z", ev.DueDate.Raw())
	assert.True(t, ev.DueDate.Time().Equal(due))
}
