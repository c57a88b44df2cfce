package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/pagepick/internal/core/config"
	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/core/selection"
	"github.com/hay-kot/pagepick/internal/tui"
)

func sampleResult() (page.Request, page.Result) {
	req := page.Request{Number: 3, Size: 2}
	res := page.Result{
		Total: 9,
		Records: []page.Record{
			{ID: "r-5", Title: "Fifth", Fields: map[string]any{"owner": "ops"}},
			{ID: "r-6", Title: "Sixth"},
		},
	}
	return req, res
}

func TestWriteRecordLines(t *testing.T) {
	req, res := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, writeRecordLines(&buf, req, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var meta struct {
		Meta page.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &meta))
	assert.Equal(t, page.Meta{CurrentPage: 3, PageSize: 2, TotalPages: 5, TotalItems: 9, HasPrevious: true, HasNext: true}, meta.Meta)

	var first struct {
		Position int         `json:"position"`
		Record   page.Record `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &first))
	assert.Equal(t, 5, first.Position)
	assert.Equal(t, "r-5", first.Record.ID)
	assert.Equal(t, "ops", first.Record.Fields["owner"])
}

func TestWriteRecordTable(t *testing.T) {
	req, res := sampleResult()

	var out, meta bytes.Buffer
	require.NoError(t, writeRecordTable(&out, &meta, []string{"id", "title", "owner"}, req, res))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"POS", "ID", "TITLE", "OWNER"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"5", "r-5", "Fifth", "ops"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"6", "r-6", "Sixth"}, strings.Fields(lines[2]))

	assert.Equal(t, "page 3/5 · 9 items · more available\n", meta.String())
}

func TestWriteRecordTable_Empty(t *testing.T) {
	var out, meta bytes.Buffer
	req := page.Request{Number: 1, Size: 10}
	require.NoError(t, writeRecordTable(&out, &meta, []string{"title"}, req, page.Result{Total: page.TotalUnknown}))

	assert.Empty(t, out.String())
	assert.Equal(t, "No records on page 1\npage 1\n", meta.String())
}

func TestWriteSelectionText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSelectionText(&buf, tui.Result{}))
	assert.Equal(t, "nothing selected\n", buf.String())

	buf.Reset()
	require.NoError(t, writeSelectionText(&buf, tui.Result{
		Count:  17,
		Ranges: []selection.Range{{Start: 21, End: 35}, {Start: 40, End: 41}},
	}))
	assert.Equal(t, "17 selected: 21-35, 40-41\n", buf.String())
}

func TestBrowseCmd_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     BrowseCmd
		wantErr bool
	}{
		{"defaults", BrowseCmd{output: outputText}, false},
		{"json", BrowseCmd{output: outputJSON, page: 3, pageSize: 50}, false},
		{"bad output", BrowseCmd{output: "yaml"}, true},
		{"negative page", BrowseCmd{output: outputText, page: -1}, true},
		{"page size too large", BrowseCmd{output: outputText, pageSize: page.MaxPageSize + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLsCmd_Request(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, page.Request{Number: 1, Size: 25}, (&LsCmd{}).request(&cfg))
	assert.Equal(t, page.Request{Number: 4, Size: 10}, (&LsCmd{page: 4, pageSize: 10}).request(&cfg))
}

func TestCollectIssues(t *testing.T) {
	issues, err := collectIssues(nil)
	require.NoError(t, err)
	assert.Empty(t, issues)

	fieldErr := criterio.ValidateStruct(
		criterio.NewFieldErrors("source.url", errors.New("is required")),
	)
	issues, err = collectIssues(fieldErr)
	require.NoError(t, err)
	assert.Equal(t, []validationIssue{{Field: "source.url", Message: "is required"}}, issues)

	plain := errors.New("boom")
	_, err = collectIssues(plain)
	assert.ErrorIs(t, err, plain)
}

func TestGenerateRecords(t *testing.T) {
	records := generateRecords(3)
	require.Len(t, records, 3)

	for i, r := range records {
		_, err := ulid.Parse(r.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, r.Fields["index"])
	}
	assert.Equal(t, records[0].Fields["batch"], records[2].Fields["batch"])
	assert.Less(t, records[0].ID, records[1].ID)
}
