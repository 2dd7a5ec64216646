// Test Type: Unit Test
// Description: Tests for the link normalizer - object form, map
// shorthand and required-field enforcement

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/manifest"
)

// linksEntry wraps a links table into a full package entry so tests go
// through the public normalizer surface.
func linksEntry(n *manifest.Normalizer, links manifest.Value) (manifest.Package, error) {
	return n.NormalizeEntry(str("pkg"), tbl(str("links"), links))
}

func TestLinkObjectForm(t *testing.T) {
	n := manifest.NewNormalizer(&manifest.Recorder{})

	t.Run("all fields", func(t *testing.T) {
		pkg, err := linksEntry(n, tbl(
			num(1), tbl(
				str("source"), str("src"),
				str("targets"), str("tar"),
				str("overwrite"), boolean(false),
				str("backup"), boolean(true),
			),
		))
		require.NoError(t, err)
		assert.Equal(t, []manifest.LinkObject{
			{Source: "src", Targets: []string{"tar"}, Overwrite: false, Backup: true},
		}, pkg.Links)
	})

	t.Run("flags default to false", func(t *testing.T) {
		pkg, err := linksEntry(n, tbl(
			num(1), tbl(str("source"), str("src"), str("targets"), str("tar")),
		))
		require.NoError(t, err)
		assert.False(t, pkg.Links[0].Overwrite)
		assert.False(t, pkg.Links[0].Backup)
	})

	t.Run("missing source is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(num(1), tbl(str("targets"), str("tar"))))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingField))
		assert.Contains(t, err.Error(), "must contain 'source'")
	})

	t.Run("non-string source is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(
			num(1), tbl(str("source"), num(3), str("targets"), str("tar")),
		))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
		assert.Contains(t, err.Error(), "'source'")
	})

	t.Run("missing targets is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(num(1), tbl(str("source"), str("src"))))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingField))
		assert.Contains(t, err.Error(), "must contain 'targets'")
	})

	t.Run("empty targets table is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(
			num(1), tbl(str("source"), str("src"), str("targets"), tbl()),
		))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingField))
	})

	t.Run("non-bool flag is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(
			num(1), tbl(
				str("source"), str("src"),
				str("targets"), str("tar"),
				str("overwrite"), str("yes"),
			),
		))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
		assert.Contains(t, err.Error(), "'overwrite'")
	})
}

func TestLinkMapShorthand(t *testing.T) {
	n := manifest.NewNormalizer(&manifest.Recorder{})

	t.Run("string value", func(t *testing.T) {
		pkg, err := linksEntry(n, tbl(str("key-src"), str("value-tar")))
		require.NoError(t, err)
		assert.Equal(t, []manifest.LinkObject{
			{Source: "key-src", Targets: []string{"value-tar"}},
		}, pkg.Links)
	})

	t.Run("table value", func(t *testing.T) {
		pkg, err := linksEntry(n, tbl(
			str("key-src"), tbl(num(1), str("a"), num(2), str("b")),
		))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, pkg.Links[0].Targets)
	})

	t.Run("shorthand has no flag slots", func(t *testing.T) {
		pkg, err := linksEntry(n, tbl(str("key-src"), str("value-tar")))
		require.NoError(t, err)
		assert.False(t, pkg.Links[0].Overwrite)
		assert.False(t, pkg.Links[0].Backup)
	})

	t.Run("invalid value kind is fatal", func(t *testing.T) {
		_, err := linksEntry(n, tbl(str("key-src"), boolean(true)))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
	})
}

func TestLinkInvalidElementShape(t *testing.T) {
	n := manifest.NewNormalizer(&manifest.Recorder{})

	_, err := linksEntry(n, tbl(num(1), str("just-a-string")))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrShape))
	assert.Contains(t, err.Error(), "expected link element")
}

func TestLinksKeepOrderAndDuplicates(t *testing.T) {
	n := manifest.NewNormalizer(&manifest.Recorder{})

	pkg, err := linksEntry(n, tbl(
		num(1), tbl(str("source"), str("dup"), str("targets"), str("a")),
		num(2), tbl(str("source"), str("dup"), str("targets"), str("b")),
		str("key-src"), str("c"),
	))
	require.NoError(t, err)

	require.Len(t, pkg.Links, 3)
	assert.Equal(t, "dup", pkg.Links[0].Source)
	assert.Equal(t, []string{"a"}, pkg.Links[0].Targets)
	assert.Equal(t, "dup", pkg.Links[1].Source)
	assert.Equal(t, []string{"b"}, pkg.Links[1].Targets)
	assert.Equal(t, "key-src", pkg.Links[2].Source)
}

func TestLinksMustBeTable(t *testing.T) {
	n := manifest.NewNormalizer(&manifest.Recorder{})

	_, err := n.NormalizeEntry(str("pkg"), tbl(str("links"), str("nope")))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "'links'")
}
