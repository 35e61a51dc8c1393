package filter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/nina/nina"
)

func testRelease(key, artist string, published time.Time, files ...nina.File) nina.Release {
	return nina.Release{
		PublicKey: key,
		Datetime:  published.Format(time.RFC3339),
		Publisher: "pub",
		Metadata: nina.Metadata{
			Name: artist + " - " + key,
			Properties: nina.Properties{
				Artist:   artist,
				Title:    key,
				Category: "audio",
				Files:    files,
			},
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "field comparison",
			expression: `Artist == "Surf Curse"`,
		},
		{
			name:       "helper call",
			expression: `hasFile("audio/mpeg") and daysSince(Published) < 30`,
		},
		{
			name:       "empty expression",
			expression: "  ",
			wantErr:    true,
		},
		{
			name:       "unclosed string",
			expression: `contains(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "helper with wrong argument type",
			expression: `hasTrack(42)`,
			wantErr:    true,
		},
		{
			name:       "non-boolean result",
			expression: `lower("X")`,
			wantErr:    true,
		},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`Tracks > 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(` Tracks > 1 `)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = compiler.Compile(`Tracks > 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Tracks > 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	// The first entry was least recently used and has been evicted
	evicted, err := compiler.Compile(`Tracks > 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())

	uncached := NewCompiler(WithCache(0))
	_, err = uncached.Compile(`Tracks > 1`)
	require.NoError(t, err)
	assert.Equal(t, 0, uncached.Size())
}

func TestReleaseFilters(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -3)
	old := time.Now().AddDate(-2, 0, 0)

	releases := []nina.Release{
		testRelease("r1", "Surf Curse", recent,
			nina.File{Track: 1, TrackTitle: "Freaks", Duration: 200, Type: "audio/mpeg"}),
		testRelease("r2", "Surf Curse", old),
		testRelease("r3", "Someone Else", recent,
			nina.File{Track: 1, TrackTitle: "Intro", Duration: 30, Type: "audio/wav"},
			nina.File{Track: 2, TrackTitle: "Outro", Duration: 40, Type: "audio/wav"}),
	}

	tests := []struct {
		expression string
		expected   []string
	}{
		{`Artist == "Surf Curse"`, []string{"r1", "r2"}},
		{`contains(Artist, "surf") and daysSince(Published) < 30`, []string{"r1"}},
		{`Published < yearsAgo(1)`, []string{"r2"}},
		{`hasFile("audio/wav")`, []string{"r3"}},
		{`hasTrack("freak")`, []string{"r1"}},
		{`Tracks >= 2 and Duration == 70`, []string{"r3"}},
		{`Hub == ""`, []string{"r1", "r2", "r3"}},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			matched, err := Apply(context.Background(), f, releases, ReleaseEnv)
			require.NoError(t, err)

			keys := make([]string, 0, len(matched))
			for _, r := range matched {
				keys = append(keys, r.PublicKey)
			}
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestEntityEnvironments(t *testing.T) {
	compiler := NewCompiler()

	t.Run("hub", func(t *testing.T) {
		f, err := compiler.Compile(`startsWith(Handle, "nina") and Name != ""`)
		require.NoError(t, err)

		ok, err := f.Match(HubEnv(nina.Hub{PublicKey: "h", Handle: "ninas-picks", DisplayName: "Nina's Picks"}))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("post", func(t *testing.T) {
		f, err := compiler.Compile(`HasReference and contains(Body, "out now")`)
		require.NoError(t, err)

		ok, err := f.Match(PostEnv(nina.Post{PublicKey: "p", Body: "New record OUT NOW", Reference: "r1"}))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.Match(PostEnv(nina.Post{PublicKey: "p", Body: "New record OUT NOW"}))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("post datetime without zone", func(t *testing.T) {
		f, err := compiler.Compile(`Published > parseDate("2022-01-01")`)
		require.NoError(t, err)

		ok, err := f.Match(PostEnv(nina.Post{PublicKey: "p", Datetime: "2022-09-02T10:00:00"}))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("exchange", func(t *testing.T) {
		f, err := compiler.Compile(`IsSale and Open and Price <= 5`)
		require.NoError(t, err)

		ok, err := f.Match(ExchangeEnv(nina.Exchange{PublicKey: "e", IsSale: true, ExpectedAmount: "4.5"}))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.Match(ExchangeEnv(nina.Exchange{PublicKey: "e", IsSale: true, ExpectedAmount: "4.5", Cancelled: true}))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEvaluationError(t *testing.T) {
	f, err := NewCompiler().Compile(`Handle > 3`)
	require.NoError(t, err)

	_, err = f.Match(HubEnv(nina.Hub{PublicKey: "hub-key", Handle: "h"}))

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "hub-key", evalErr.Key)
	assert.Contains(t, err.Error(), "hub-key")
}

func TestApply(t *testing.T) {
	t.Run("nil filter matches all", func(t *testing.T) {
		hubs := []nina.Hub{{PublicKey: "a"}, {PublicKey: "b"}}
		matched, err := Apply(context.Background(), nil, hubs, HubEnv)
		require.NoError(t, err)
		assert.Equal(t, hubs, matched)
	})

	t.Run("concurrent evaluation preserves order", func(t *testing.T) {
		hubs := make([]nina.Hub, 1000)
		for i := range hubs {
			hubs[i] = nina.Hub{PublicKey: fmt.Sprintf("h%04d", i), Handle: fmt.Sprintf("hub-%d", i%3)}
		}

		f, err := NewCompiler().Compile(`Handle == "hub-0"`)
		require.NoError(t, err)

		matched, err := Apply(context.Background(), f, hubs, HubEnv)
		require.NoError(t, err)
		require.Len(t, matched, 334)
		for i, h := range matched {
			assert.Equal(t, fmt.Sprintf("h%04d", i*3), h.PublicKey)
		}
	})

	t.Run("evaluation error stops the run", func(t *testing.T) {
		hubs := make([]nina.Hub, 250)
		for i := range hubs {
			hubs[i] = nina.Hub{PublicKey: fmt.Sprintf("h%d", i)}
		}

		f, err := NewCompiler().Compile(`Handle > 3`)
		require.NoError(t, err)

		matched, err := Apply(context.Background(), f, hubs, HubEnv)
		assert.Nil(t, matched)
		var evalErr *EvaluationError
		assert.ErrorAs(t, err, &evalErr)
	})
}

func TestPresets(t *testing.T) {
	presets := NewPresets(nil)

	require.NoError(t, presets.RegisterAll(map[string]string{
		"recent":  `daysSince(Published) < 30`,
		"on-sale": `IsSale and Open`,
	}))
	assert.Equal(t, []string{"on-sale", "recent"}, presets.Names())

	err := presets.RegisterAll(map[string]string{
		"broken": `Artist ==`,
		"fine":   `true`,
	})
	require.Error(t, err)
	assert.Equal(t, []string{"on-sale", "recent"}, presets.Names())

	_, err = presets.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	t.Run("resolve", func(t *testing.T) {
		f, err := presets.Resolve(`Tracks > 0`, "recent")
		require.NoError(t, err)
		assert.Equal(t, "Tracks > 0", f.Expression())

		f, err = presets.Resolve("", "recent")
		require.NoError(t, err)
		assert.Equal(t, "daysSince(Published) < 30", f.Expression())

		f, err = presets.Resolve("", "")
		require.NoError(t, err)
		assert.Nil(t, f)
	})
}
