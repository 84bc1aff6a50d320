package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/timex"
)

func TestUser_ViewDropsPassword(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", Name: "A", Password: "secret"}
	v := u.View()
	assert.Equal(t, UserView{ID: "u1", Email: "a@x.com", Name: "A"}, v)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}

func TestStatus_LabelAndValid(t *testing.T) {
	assert.Equal(t, "Open", StatusOpen.Label())
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Closed", StatusClosed.Label())
	assert.False(t, Status("done").Valid())
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"open", StatusOpen, true},
		{" Closed ", StatusClosed, true},
		{"in_progress", StatusInProgress, true},
		{"in-progress", StatusInProgress, true},
		{"In Progress", StatusInProgress, true},
		{"resolved", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if !tt.ok {
			require.ErrorIs(t, err, common.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, Priority(""), p)

	_, err = ParsePriority("urgent")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTicket_JSONShape(t *testing.T) {
	at := timex.At(time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	tk := Ticket{ID: "t1", Title: "Printer", Status: StatusInProgress, CreatedAt: at, UpdatedAt: at}

	b, err := json.Marshal(tk)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "t1",
		"title": "Printer",
		"status": "in_progress",
		"createdAt": "2025-01-02T03:04:05.006Z",
		"updatedAt": "2025-01-02T03:04:05.006Z"
	}`, string(b))
}

func TestTicket_UnknownEnumsFailToDecode(t *testing.T) {
	var tk Ticket
	err := json.Unmarshal([]byte(`{"id":"t","title":"x","status":"done","createdAt":"2025-01-02T03:04:05.000Z","updatedAt":"2025-01-02T03:04:05.000Z"}`), &tk)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":"t","title":"x","status":"open","priority":"urgent","createdAt":"2025-01-02T03:04:05.000Z","updatedAt":"2025-01-02T03:04:05.000Z"}`), &tk)
	require.Error(t, err)
}

func TestTicketPatch_Apply(t *testing.T) {
	tk := Ticket{ID: "t1", Title: "old", Description: "d", Status: StatusOpen, Priority: PriorityLow}

	title := "new"
	empty := ""
	closed := StatusClosed
	TicketPatch{Title: &title, Description: &empty, Status: &closed}.Apply(&tk)

	assert.Equal(t, "new", tk.Title)
	assert.Equal(t, "", tk.Description)
	assert.Equal(t, StatusClosed, tk.Status)
	assert.Equal(t, PriorityLow, tk.Priority)
	assert.Equal(t, "t1", tk.ID)
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name        string
		title, desc string
		wantErr     string
	}{
		{name: "ok", title: "Broken printer", desc: "paper jam"},
		{name: "trimmed ok", title: "  abc  "},
		{name: "empty", title: "   ", wantErr: "title is required"},
		{name: "short", title: "ab", wantErr: "at least 3"},
		{name: "long", title: strings.Repeat("x", 101), wantErr: "at most 100"},
		{name: "desc long", title: "abc", desc: strings.Repeat("d", 501), wantErr: "at most 500"},
		{name: "multibyte counts runes", title: "äöü"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForm(tt.title, tt.desc)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	require.NoError(t, ValidateSignup("a@x.com", "pw", "A"))

	err := ValidateSignup("  ", "", "")
	require.ErrorIs(t, err, common.ErrValidation)
	for _, msg := range []string{"name is required", "email is required", "password is required"} {
		assert.Contains(t, err.Error(), msg)
	}

	err = ValidateSignup("nobody", "pw", "N")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email must contain @")
}
