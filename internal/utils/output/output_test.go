package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.Record {
	return []models.Record{
		models.NewRecord("“Não há nada <fixo>.”", "José Saramago", []string{"vida", "日本語", "a&b"}),
		models.NewRecord("“A day without sunshine is like, you know, night.”", "Steve Martin", nil),
		models.NewRecord("Line \"quoted\"", "Anon", []string{"x"}),
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resposta.txt")
	want := sampleRecords()

	require.NoError(t, SaveJSONL(want, path))
	got, err := LoadJSONL(path)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveJSONL_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, SaveJSONL(sampleRecords(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, `{"quote":"“Não há nada <fixo>.”","author":"José Saramago","tags":["vida","日本語","a&b"]}`, lines[0])
	assert.Equal(t, `{"quote":"“A day without sunshine is like, you know, night.”","author":"Steve Martin","tags":[]}`, lines[1])
}

func TestSaveJSONL_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, SaveJSONL(sampleRecords(), path))
	require.NoError(t, SaveJSONL(nil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReadJSONL(t *testing.T) {
	in := `{"quote":"a","author":"b","tags":null}

{"quote":"c","author":"d"}
`
	got, err := ReadJSONL(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{}, got[0].Tags)
	assert.Equal(t, []string{}, got[1].Tags)

	_, err = ReadJSONL(strings.NewReader("{\"quote\":\"a\"}\nnot json\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, SaveCSV(sampleRecords(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"quote", "author", "tags"}, rows[0])
	assert.Equal(t, "vida|日本語|a&b", rows[1][2])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, `Line "quoted"`, rows[3][0])
}

func TestSave_Dispatch(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Save(sampleRecords(), filepath.Join(dir, "a.json"), ""))
	raw, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n"))
	assert.Contains(t, string(raw), "<fixo>")

	require.NoError(t, Save(sampleRecords(), filepath.Join(dir, "b.txt"), models.FormatCSV))
	raw, err = os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "quote,author,tags\n"))

	assert.Error(t, Save(nil, filepath.Join(dir, "c.xml"), "xml"))
	assert.Error(t, Save(nil, filepath.Join(dir, "missing", "d.jsonl"), ""))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, models.FormatJSONL, FormatFromPath("resposta.txt"))
	assert.Equal(t, models.FormatJSONL, FormatFromPath("out.JSONL"))
	assert.Equal(t, models.FormatCSV, FormatFromPath("out.csv"))
	assert.Equal(t, models.FormatJSON, FormatFromPath("/tmp/out.json"))
}
