package render

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sceneHTML(t *testing.T, cfg SceneConfig) string {
	t.Helper()

	s := NewScene(cfg)
	pts := [][3]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}
	hover := []string{"r: 1.000", "r: 2.000", "r: 3.000"}
	s.Add("stream 0", pts, hover, "#ff0000", 0.8, 3)

	path := filepath.Join(t.TempDir(), "scene.html")
	if err := s.WriteHTML(path); err != nil {
		t.Fatalf("Got the error '%s'.", err.Error())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Got the error '%s'.", err.Error())
	}
	return string(b)
}

func TestSceneWriteHTML(t *testing.T) {
	cfg := SceneConfig{
		Title:    "t = 2021-01-02 12:00:00",
		AxisUnit: "Rs",
		Camera:   DefaultSceneCamera(),
	}
	html := sceneHTML(t, cfg)

	for i, want := range []string{
		"echarts", "scatter3D", "stream 0", "r: 2.000", "#ff0000", "x [Rs]",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("%d) Expected the page to contain '%s'.", i+1, want)
		}
	}
	if strings.Contains(html, "goecharts_epanscene.setOption") {
		t.Errorf("Expected no view script when every view option is unset.")
	}
}

func TestSceneViewScript(t *testing.T) {
	cfg := SceneConfig{
		AxisUnit: "au",
		Extent:   20,
		Camera:   SceneCamera{Alpha: 30, Beta: 45, Distance: 200},
	}
	html := sceneHTML(t, cfg)

	for i, want := range []string{
		"goecharts_epanscene.setOption",
		"alpha:30", "beta:45", "distance:200",
		"min:-20,max:20",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("%d) Expected the page to contain '%s'.", i+1, want)
		}
	}
}

func TestSceneHiddenAxes(t *testing.T) {
	cfg := SceneConfig{HideAxes: true, Camera: DefaultSceneCamera()}
	html := sceneHTML(t, cfg)

	if !strings.Contains(html, "xAxis3D:{show:false}") {
		t.Errorf("Expected the view script to hide the axes.")
	}
}

func TestSceneScript(t *testing.T) {
	cfg := SceneConfig{Camera: DefaultSceneCamera()}
	if js := sceneScript(cfg); js != "" {
		t.Errorf("Expected an empty script, but got '%s'.", js)
	}

	cfg.Camera.Alpha = 0
	js := sceneScript(cfg)
	if !strings.Contains(js, "alpha:0") {
		t.Errorf("Expected an explicit zero alpha to survive, but got '%s'.", js)
	}

	cfg.Camera = SceneCamera{
		Alpha: math.NaN(), Beta: math.NaN(), Distance: math.NaN(),
		AutoRotate: true,
	}
	if js := sceneScript(cfg); !strings.Contains(js, "autoRotate:true") {
		t.Errorf("Expected an auto rotate script, but got '%s'.", js)
	}
}
