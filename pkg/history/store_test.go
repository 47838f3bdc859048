package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testFiles(marker string) map[string]string {
	return map[string]string{
		"package.json": `{"name": "demo"}`,
		"src/App.jsx":  "const App = () => <div>" + marker + "</div>;",
	}
}

func TestSaveAssignsMonotonicNumbers(t *testing.T) {
	s := NewStore(t.TempDir())

	v1, err := s.Save("proj", "a restaurant", testFiles("v1"))
	require.NoError(t, err)
	v2, err := s.Save("proj", "make it bigger", testFiles("v2"))
	require.NoError(t, err)

	require.Equal(t, 1, v1.Number)
	require.Equal(t, 2, v2.Number)
	require.NotEqual(t, v1.ID, v2.ID)
	require.Len(t, v1.ID, idLength)
}

func TestLatestReturnsNewest(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save("proj", "first", testFiles("v1"))
	require.NoError(t, err)
	saved, err := s.Save("proj", "second", testFiles("v2"))
	require.NoError(t, err)

	latest, err := s.Latest("proj")
	require.NoError(t, err)
	require.Equal(t, saved.ID, latest.ID)
	require.Contains(t, latest.Files["src/App.jsx"], "v2")
}

func TestLatestEmptyProject(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Latest("ghost")
	require.ErrorIs(t, err, ErrNoVersions)
}

func TestGetByID(t *testing.T) {
	s := NewStore(t.TempDir())
	v1, err := s.Save("proj", "first", testFiles("v1"))
	require.NoError(t, err)
	_, err = s.Save("proj", "second", testFiles("v2"))
	require.NoError(t, err)

	got, err := s.Get("proj", v1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Number)
	require.Contains(t, got.Files["src/App.jsx"], "v1")

	_, err = s.Get("proj", "nope")
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestListSummaries(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save("proj", "first", testFiles("v1"))
	require.NoError(t, err)
	_, err = s.Save("proj", "second", testFiles("v2"))
	require.NoError(t, err)

	summaries, err := s.List("proj")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 1, summaries[0].Number)
	require.Equal(t, "first", summaries[0].Prompt)
	require.Equal(t, 2, summaries[0].FileCount)
}

func TestProjectsIsolated(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save("alpha", "p", testFiles("a"))
	require.NoError(t, err)
	_, err = s.Save("beta", "p", testFiles("b"))
	require.NoError(t, err)

	projects, err := s.Projects()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, projects)

	latest, err := s.Latest("alpha")
	require.NoError(t, err)
	require.Contains(t, latest.Files["src/App.jsx"], "a")
}
