package dataset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
)

func TestParse_CommaSeparated(t *testing.T) {
	input := "id,step_1,step_2\n1,Engineer,Lead\n2,Analyst,\n"

	tbl, err := Parse("test.csv", strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, "utf-8", tbl.Encoding)
	assert.Equal(t, ',', tbl.Delimiter)
	assert.Equal(t, []string{"id", "step_1", "step_2"}, tbl.Header)
	assert.Equal(t, []int{1, 2}, tbl.Steps)
	assert.Len(t, tbl.Rows, 2)
}

func TestParse_SniffsDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"semicolon", "id;a;b\n1;x;y\n2;x;z\n", ';'},
		{"tab", "id\ta\tb\n1\tx\ty\n", '\t'},
		{"pipe", "id|a|b\n1|x|y\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Parse("in", strings.NewReader(tt.input), Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Delimiter)
			assert.Equal(t, []string{"id", "a", "b"}, tbl.Header)
		})
	}
}

func TestParse_StripsBOM(t *testing.T) {
	input := "\ufeffid,step_1\n1,Engineer\n"

	tbl, err := Parse("bom.csv", strings.NewReader(input), Options{StepColumns: []string{"step_1"}})
	require.NoError(t, err)
	assert.Equal(t, "id", tbl.Header[0])
}

func TestParse_KoreanLegacyEncoding(t *testing.T) {
	text := "번호,1차 이동 직무,2차 이동 직무\n1,개발자,팀장\n"
	encoded, err := korean.EUCKR.NewEncoder().String(text)
	require.NoError(t, err)

	tbl, err := Parse("kr.csv", strings.NewReader(encoded), Options{
		StepColumns: []string{"1차 이동 직무", "2차 이동 직무"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cp949", tbl.Encoding)
	ds := Extract(tbl)
	require.Len(t, ds.Paths, 1)
	assert.Equal(t, model.CareerPath{"개발자", "팀장"}, ds.Paths[0])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
	}{
		{"empty input", "", Options{}},
		{"whitespace only", "  \n\n", Options{}},
		{"header only", "id,step_1,step_2\n", Options{}},
		{"single column", "positions\nEngineer\nLead\n", Options{}},
		{"missing step column", "id,step_1\n1,Engineer\n", Options{StepColumns: []string{"step_1", "step_9"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.csv", strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.True(t, model.IsDataFormat(err), "want DataFormatError, got %T: %v", err, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.True(t, model.IsDataFormat(err))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,s1,s2\n1,A,B\n"), 0644))

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Source)
}

func TestLoad_Bundled(t *testing.T) {
	tbl, ds, err := Open("", Options{})
	require.NoError(t, err)

	assert.Equal(t, BundledSource, tbl.Source)
	assert.Equal(t, []string{"step_1", "step_2", "step_3", "step_4"}, tbl.StepNames())
	assert.NotEmpty(t, ds.Paths)
	assert.Contains(t, ds.Positions, "Software Engineer")
	assert.NotEmpty(t, ds.ID)
}

func TestParse_SameContentSameID(t *testing.T) {
	a, err := Parse("a.csv", strings.NewReader("id,s1\n1,A\n"), Options{})
	require.NoError(t, err)
	b, err := Parse("b.csv", strings.NewReader("id;s1\n1;A\n"), Options{})
	require.NoError(t, err)
	c, err := Parse("c.csv", strings.NewReader("id,s1\n1,B\n"), Options{})
	require.NoError(t, err)

	assert.Equal(t, Extract(a).ID, Extract(b).ID)
	assert.NotEqual(t, Extract(a).ID, Extract(c).ID)
}

func TestParse_StepColumnsChangeID(t *testing.T) {
	input := "id,s1,s2,s3\n1,A,B,C\n2,A,B,D\n3,X,Y,\n4,X,Y,C\n"

	all, err := Parse("paths.csv", strings.NewReader(input), Options{})
	require.NoError(t, err)
	firstTwo, err := Parse("paths.csv", strings.NewReader(input), Options{StepColumns: []string{"s1", "s2"}})
	require.NoError(t, err)

	dsAll, dsTwo := Extract(all), Extract(firstTwo)
	require.NotEqual(t, dsAll.ID, dsTwo.ID)

	cache := miner.NewCache(slog.New(slog.NewTextHandler(io.Discard, nil)))
	th := model.Thresholds{MinSupport: 0.3}
	cache.Rules(dsAll, th)
	got := cache.Rules(dsTwo, th)

	assert.Equal(t, 2, cache.Len())
	require.NotEmpty(t, got)
	assert.Equal(t, miner.GenerateRules(dsTwo.Paths, dsTwo.Positions, th), got)
}
