package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsPrefersFlagValues(t *testing.T) {
	t.Setenv("PYREFLY_TEST_PATH", "/from/env")
	got := resolvePaths([]string{"/from/flag"}, "PYREFLY_TEST_PATH")
	assert.Equal(t, []string{"/from/flag"}, got)
}

func TestResolvePathsFallsBackToEnv(t *testing.T) {
	t.Setenv("PYREFLY_TEST_PATH", "/a"+string(os.PathListSeparator)+"/b")
	got := resolvePaths(nil, "PYREFLY_TEST_PATH")
	assert.Equal(t, []string{"/a", "/b"}, got)
}

func TestResolvePathsEmptyWhenNeitherSet(t *testing.T) {
	t.Setenv("PYREFLY_TEST_PATH", "")
	got := resolvePaths(nil, "PYREFLY_TEST_PATH")
	assert.Nil(t, got)
}

func TestParseRuntimeMetadataParsesVersion(t *testing.T) {
	runtime, err := parseRuntimeMetadata("3.11.4")
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 11, 4}, runtime.PythonVersion)
	assert.Equal(t, platformName(), runtime.Platform)
}

func TestParseRuntimeMetadataRejectsMalformedVersion(t *testing.T) {
	_, err := parseRuntimeMetadata("3.11")
	assert.Error(t, err)

	_, err = parseRuntimeMetadata("x.y.z")
	assert.Error(t, err)
}
