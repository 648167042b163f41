package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeed(t *testing.T) {
	t.Run("Should return nothing for whitespace input", func(t *testing.T) {
		feed := ParseFeed("  \n\t \n")
		assert.Empty(t, feed.Rows)
		assert.Empty(t, feed.Headers)
		assert.False(t, feed.HasUpdatedAt)
	})

	t.Run("Should capture last updated marker and skip it", func(t *testing.T) {
		feed := ParseFeed("LAST UPDATED: 2024-05-01 10:00,,,\nName,Division\nJane,9U Female\n")
		require.True(t, feed.HasUpdatedAt)
		assert.Equal(t, "2024-05-01 10:00", feed.UpdatedAt)
		assert.Equal(t, []string{"Name", "Division"}, feed.Headers)
		require.Len(t, feed.Rows, 1)
		assert.Equal(t, "Jane", feed.Rows[0].Get("Name"))
	})

	t.Run("Should keep metadata when no header follows", func(t *testing.T) {
		feed := ParseFeed("Last updated: yesterday\n,,,\n")
		assert.True(t, feed.HasUpdatedAt)
		assert.Equal(t, "yesterday", feed.UpdatedAt)
		assert.Empty(t, feed.Rows)
	})

	t.Run("Should skip blank and comma-only lines", func(t *testing.T) {
		feed := ParseFeed("Name,Division\r\n,,\r\n\r\nA,10-12 Male\r\n,,,,\r\nB,9U Female\r\n")
		require.Len(t, feed.Rows, 2)
		assert.Equal(t, "A", feed.Rows[0].Get("Name"))
		assert.Equal(t, "9U Female", feed.Rows[1].Get("Division"))
	})

	t.Run("Should pad short rows and drop extra fields", func(t *testing.T) {
		feed := ParseFeed("Name, Division ,Gym\nA\nB,40+ Male,Gym B,extra")
		require.Len(t, feed.Rows, 2)
		assert.Equal(t, RawRow{"Name": "A", "Division": "", "Gym": ""}, feed.Rows[0])
		assert.Equal(t, RawRow{"Name": "B", "Division": "40+ Male", "Gym": "Gym B"}, feed.Rows[1])
	})

	t.Run("Should let the later duplicate header win", func(t *testing.T) {
		feed := ParseFeed("Name,Division,Division\nA,first,second")
		require.Len(t, feed.Rows, 1)
		assert.Equal(t, "second", feed.Rows[0].Get("Division"))
		assert.Equal(t, []string{"Name", "Division", "Division"}, feed.Headers)
	})

	t.Run("Should keep empty fields in place", func(t *testing.T) {
		feed := ParseFeed("Name,Division,Gym\n,,Gym C")
		require.Len(t, feed.Rows, 1)
		assert.Equal(t, "", feed.Rows[0].Get("Name"))
		assert.Equal(t, "Gym C", feed.Rows[0].Get("Gym"))
	})
}

func TestSplitFields(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain", line: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "quoted comma", line: `Doe, Jane,"25 NINJA, Female Pro",x`, want: []string{"Doe", "Jane", "25 NINJA, Female Pro", "x"}},
		{name: "trims around quotes", line: `  " spaced " , b `, want: []string{"spaced", "b"}},
		{name: "trailing empty", line: "a,", want: []string{"a", ""}},
		{name: "single field", line: "only", want: []string{"only"}},
		{name: "lone quote kept", line: `"open,b`, want: []string{`"open,b`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitFields(tc.line))
		})
	}
}

func TestParseFeed_ByteOrderMark(t *testing.T) {
	feed := ParseFeed("\ufeffName,Division\nA,9U Male\n")
	require.Len(t, feed.Rows, 1)
	assert.Equal(t, "A", feed.Rows[0].Get("Name"))
}
