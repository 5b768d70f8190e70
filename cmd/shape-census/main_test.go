package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"go.viam.com/test"

	"github.com/ironsheep/shape-census/internal/detection"
)

// writeScene saves a light 540x540 image with one dark square.
func writeScene(t *testing.T, dir, name string) string {
	t.Helper()
	img := imaging.New(540, 540, color.NRGBA{200, 200, 200, 255})
	for y := 80; y < 200; y++ {
		for x := 80; x < 200; x++ {
			img.SetNRGBA(x, y, color.NRGBA{40, 40, 40, 255})
		}
	}
	path := filepath.Join(dir, name)
	test.That(t, imaging.Save(img, path), test.ShouldBeNil)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"shape-census"}, args...))
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "shape-census dev")
	test.That(t, out, test.ShouldContainSubstring, "Git commit: unknown")
}

func TestAnalyzeText(t *testing.T) {
	path := writeScene(t, t.TempDir(), "scene.png")

	out, err := run(t, path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "------ scene.png stats ------\n")
	test.That(t, out, test.ShouldContainSubstring, "The number of objects in the scene is : 1\n")
	test.That(t, out, test.ShouldContainSubstring, "The number of square-like object in the scene is : 1\n")
	test.That(t, out, test.ShouldEndWith, "------ end of scene.png stats ------\n")
}

func TestAnalyzeJSONAndAnnotated(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.png")
	annotated := filepath.Join(dir, "annotated.png")

	out, err := run(t, "analyze", "--json", "--out", annotated, path)
	test.That(t, err, test.ShouldBeNil)

	var report detection.Report
	test.That(t, json.Unmarshal([]byte(out), &report), test.ShouldBeNil)
	test.That(t, report.Total, test.ShouldEqual, 1)
	test.That(t, report.Counts[detection.Square], test.ShouldEqual, 1)

	img, err := imaging.Open(annotated)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 740, 740))
}

func TestAnalyzeSeveralImages(t *testing.T) {
	dir := t.TempDir()
	first := writeScene(t, dir, "first.png")
	missing := filepath.Join(dir, "missing.png")

	out, err := run(t, "analyze", "--out", filepath.Join(dir, "annotated.png"), first, missing)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "1 of 2 images failed")
	test.That(t, strings.Count(out, "stats ------"), test.ShouldEqual, 2)

	_, statErr := os.Stat(filepath.Join(dir, "annotated-first.png"))
	test.That(t, statErr, test.ShouldBeNil)
}

func TestAnalyzeNoImages(t *testing.T) {
	_, err := run(t, "analyze")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAnalyzeBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "census.yaml")
	test.That(t, os.WriteFile(cfgPath, []byte("blur_kernel: 4\n"), 0o644), test.ShouldBeNil)

	_, err := run(t, "analyze", "--config", cfgPath, writeScene(t, dir, "scene.png"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "blur_kernel")
}

func TestAnnotatedPath(t *testing.T) {
	tests := []struct {
		out, source, want string
	}{
		{"annotated.png", "photos/a.jpg", "annotated-a.png"},
		{"/tmp/out/result.jpg", "b.png", "/tmp/out/result-b.jpg"},
		{"plain", "c.png", "plain-c"},
	}
	for _, tt := range tests {
		test.That(t, annotatedPath(tt.out, tt.source), test.ShouldEqual, tt.want)
	}
}
