package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetTree(t *testing.T) (*ScanResult, string) {
	root := t.TempDir()
	writeFile(t, root, "config.toml", `title = "Home"`)
	writeFile(t, root, "avatar.png", "png")
	writeFile(t, root, "01-work/config.toml", `password = "x"`)
	writeFile(t, root, "01-work/cv.pdf", "pdf")
	writeFile(t, root, "01-work/images/shot.png", "png")
	writeFile(t, root, "01-work/.env", "SECRET=1")
	writeFile(t, root, "01-work/projects/config.toml", `title = "Projects"`)
	writeFile(t, root, "01-work/projects/demo.mp4", "mp4")
	return scanTree(t, root), root
}

func TestAssetOwner(t *testing.T) {
	res, _ := assetTree(t)

	assert.Equal(t, "/", res.AssetOwner("/avatar.png").Path)
	assert.Equal(t, "/work", res.AssetOwner("/work/cv.pdf").Path)
	assert.Equal(t, "/work", res.AssetOwner("/work/images/shot.png").Path)
	assert.Equal(t, "/work/projects", res.AssetOwner("/work/projects/demo.mp4").Path)
	assert.Equal(t, "/", res.AssetOwner("/workshop/x.png").Path)
}

func TestResolveAsset(t *testing.T) {
	res, root := assetTree(t)

	owner, file, err := res.ResolveAsset("/work/images/shot.png")
	require.NoError(t, err)
	assert.Equal(t, "/work", owner.Path)
	assert.Equal(t, filepath.Join(root, "01-work", "images", "shot.png"), file)

	owner, file, err = res.ResolveAsset("/work/projects/demo.mp4")
	require.NoError(t, err)
	assert.True(t, owner.Protected)
	assert.Equal(t, filepath.Join(root, "01-work", "projects", "demo.mp4"), file)
}

func TestResolveAssetRejects(t *testing.T) {
	res, _ := assetTree(t)

	for _, p := range []string{
		"/",
		"/work/config.toml",
		"/config.toml",
		"/work/.env",
		"/work/images",
		"/work/missing.png",
		"/../../etc/passwd",
		"/work/../../../etc/passwd",
		"/theme.TOML",
	} {
		_, _, err := res.ResolveAsset(p)
		assert.ErrorIs(t, err, ErrNotFound, "path %s", p)
	}
}

func TestResolveAssetIgnoresSectionFolderNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.toml", `title = "Home"`)
	writeFile(t, root, "2-private/config.toml", `password = "x"`)
	writeFile(t, root, "2-private/secret.txt", "secret")
	writeFile(t, root, "2-private/1-letters/config.toml", `hidden = true`)
	writeFile(t, root, "2-private/1-letters/letter.txt", "dear")
	writeFile(t, root, "1-work/config.toml", `title = "Work"`)
	writeFile(t, root, "2-work/config.toml", `password = "y"`)
	writeFile(t, root, "2-work/x", "skipped")
	res := scanTree(t, root)

	for _, p := range []string{
		"/2-private/secret.txt",
		"/2-private/1-letters/letter.txt",
		"/private/1-letters/letter.txt",
		"/2-work/x",
	} {
		_, _, err := res.ResolveAsset(p)
		assert.ErrorIs(t, err, ErrNotFound, "path %s", p)
	}

	owner, _, err := res.ResolveAsset("/private/secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "/private", owner.Path)
	assert.True(t, owner.Protected)

	owner, _, err = res.ResolveAsset("/private/letters/letter.txt")
	require.NoError(t, err)
	assert.Equal(t, "/private/letters", owner.Path)
}

func TestResolveAssetRejectsEscapingSymlink(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("outside"), 0o644))

	root := t.TempDir()
	writeFile(t, root, "config.toml", `title = "Home"`)
	writeFile(t, root, "inside.txt", "inside")
	if err := os.Symlink(outside, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "inside.txt"), filepath.Join(root, "alias.txt")))
	res := scanTree(t, root)

	_, _, err := res.ResolveAsset("/link.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = res.ResolveAsset("/alias.txt")
	assert.NoError(t, err)
}
