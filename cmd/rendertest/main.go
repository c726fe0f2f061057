// Command rendertest composites a radiograph with a study's overlays into a
// PNG without opening a window. Useful for checking windowing and transform
// output on a headless machine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"

	"radview/internal/app"
	"radview/internal/overlay"
	"radview/internal/render"
	"radview/internal/xray"
	"radview/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to radiograph (TIFF, PNG, or JPEG)")
	outPath := flag.String("out", "render.png", "Output PNG path")
	studyPath := flag.String("study", "", "Optional study file (.rvstudy) to overlay")
	detPath := flag.String("detections", "", "Optional detections JSON to overlay")
	width := flag.Int("w", 1024, "Output width in pixels")
	height := flag.Int("h", 768, "Output height in pixels")
	zoom := flag.Float64("zoom", 0, "Zoom factor; 0 fits the image")
	rotate := flag.Float64("rotate", 0, "Rotation in degrees")
	flipH := flag.Bool("fliph", false, "Flip horizontally")
	flipV := flag.Bool("flipv", false, "Flip vertically")
	center := flag.Float64("center", 0, "Window center; 0 keeps the default")
	winWidth := flag.Float64("width", 0, "Window width; 0 keeps the default")
	invert := flag.Bool("invert", false, "Invert grayscale")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: rendertest -image <path> [-out render.png] [-study file.rvstudy] [-zoom 1.0]")
		os.Exit(1)
	}

	layer, err := xray.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	state := app.NewState()
	state.AddLayer(layer)
	state.SetCanvasSize(geometry.Size{Width: float64(*width), Height: float64(*height)})
	fmt.Printf("Loaded image: %.0fx%.0f pixels\n", layer.Size().Width, layer.Size().Height)

	if *studyPath != "" {
		if err := state.LoadStudy(*studyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load study: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Study overlays: %d annotations, %d measurements\n",
			len(state.Annotations()), len(state.Measurements()))
	}

	if *detPath != "" {
		data, err := os.ReadFile(*detPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read detections: %v\n", err)
			os.Exit(1)
		}
		var dets []overlay.Detection
		if err := json.Unmarshal(data, &dets); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse detections: %v\n", err)
			os.Exit(1)
		}
		state.SetDetections(state.ActiveImageID(), dets)
		fmt.Printf("Detections: %d\n", len(dets))
	}

	if *zoom > 0 {
		state.SetZoom(*zoom)
	}
	if *rotate != 0 {
		state.SetRotation(*rotate)
	}
	if *flipH {
		state.ToggleFlipHorizontal()
	}
	if *flipV {
		state.ToggleFlipVertical()
	}

	w := state.Windowing()
	if *center > 0 {
		w.Center = *center
	}
	if *winWidth > 0 {
		w.Width = *winWidth
	}
	w.Invert = *invert
	state.SetWindowing(w)

	frame := render.Frame(state, *width, *height)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}

	v := state.View()
	fmt.Printf("Rendered %dx%d at zoom %.3f rotation %.0f to %s\n",
		*width, *height, v.Zoom, v.Rotation, *outPath)
}
