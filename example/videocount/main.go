/*
Example that replays recorded object detections over a video file, runs
the counting engine on them and writes out an annotated copy of the video
with boxes, trails, counting lines and zones overlaid.

The detections file carries one JSON document per line, one line per
video frame:

	{"detections":[{"class":0,"prob":0.92,"box":[79,205,169,609]}]}

Producing the detections is left to whatever detector the pipeline uses
upstream, the engine only consumes its output.
*/
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"

	objectcount "github.com/cvkit/go-objectcount"
	"github.com/cvkit/go-objectcount/render"
	"github.com/cvkit/go-objectcount/tracker"
)

// frameDets is one line of the detections file
type frameDets struct {
	Detections []struct {
		Class int        `json:"class"`
		Prob  float32    `json:"prob"`
		Box   [4]float32 `json:"box"`
	} `json:"detections"`
}

func main() {

	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	vidFile := flag.String("video", "", "Video file to process")
	detsFile := flag.String("dets", "", "JSON lines file with per frame detections")
	configFile := flag.String("config", "", "YAML file with counting line/zone definitions")
	saveFile := flag.String("out", "", "Video file to write annotated output to")
	labelFile := flag.String("labels", "", "Text file with class labels, defaults to COCO")
	fontFile := flag.String("font", "", "TTF font file for the count summary panel")
	verbose := flag.Bool("verbose", false, "Log each crossing and zone event")

	flag.Parse()

	if *vidFile == "" || *detsFile == "" || *configFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	err := processVideo(*vidFile, *detsFile, *configFile, *saveFile,
		*labelFile, *fontFile, *verbose)

	if err != nil {
		log.Fatalf("Error processing video: %v", err)
	}
}

func processVideo(vidFile, detsFile, configFile, saveFile,
	labelFile, fontFile string, verbose bool) error {

	// load class labels
	classNames := objectcount.COCOClassNames

	if labelFile != "" {

		var err error
		classNames, err = objectcount.LoadClassNames(labelFile)

		if err != nil {
			return fmt.Errorf("error loading labels: %w", err)
		}
	}

	// load TTF face for the count summary panel
	var face font.Face

	if fontFile != "" {

		var err error
		face, err = render.LoadFontFace(fontFile, 20)

		if err != nil {
			return fmt.Errorf("error loading font: %w", err)
		}
	}

	// load counting geometry
	lineDefs, zoneDefs, err := objectcount.LoadConfigFile(configFile)

	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	engine := objectcount.NewCountingEngine(tracker.DefaultConfig())

	if verbose {
		engine.SetLogger(zerolog.New(zerolog.NewConsoleWriter()).
			Level(zerolog.DebugLevel))
	}

	for _, def := range lineDefs {
		if err := engine.AddLine(def); err != nil {
			return fmt.Errorf("error adding line: %w", err)
		}
	}

	for _, def := range zoneDefs {
		if err := engine.AddZone(def); err != nil {
			return fmt.Errorf("error adding zone: %w", err)
		}
	}

	// open detections file
	dets, err := os.Open(detsFile)

	if err != nil {
		return fmt.Errorf("error opening detections file: %w", err)
	}

	defer dets.Close()

	scanner := bufio.NewScanner(dets)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	// open video source
	video, err := gocv.VideoCaptureFile(vidFile)

	if err != nil {
		return fmt.Errorf("error opening video file: %w", err)
	}

	defer video.Close()

	width := int(video.Get(gocv.VideoCaptureFrameWidth))
	height := int(video.Get(gocv.VideoCaptureFrameHeight))
	fps := video.Get(gocv.VideoCaptureFPS)

	var writer *gocv.VideoWriter

	if saveFile != "" {

		writer, err = gocv.VideoWriterFile(saveFile, "mp4v", fps,
			width, height, true)

		if err != nil {
			return fmt.Errorf("error opening video writer: %w", err)
		}

		defer writer.Close()
	}

	img := gocv.NewMat()
	defer img.Close()

	font := render.DefaultFont()
	trail := render.NewTrail(64)

	frameIndex := 0
	var snap *objectcount.Snapshot

	for {

		if ok := video.Read(&img); !ok || img.Empty() {
			break
		}

		frame, err := nextFrameDets(scanner)

		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		snap, err = engine.Process(frameIndex, frame)

		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		// draw overlays
		render.CountingLines(&img, lineDefs, snap, font, 2)
		render.Zones(&img, zoneDefs, snap, font, 2)
		render.TrackBoxes(&img, snap.Tracks, classNames, font, 2)

		trail.Add(snap)
		render.Trails(&img, snap, trail, render.DefaultTrailStyle())

		if face != nil {
			if err := render.CountPanel(&img, face, snap.Summary(), 16, 32); err != nil {
				return fmt.Errorf("error drawing count panel: %w", err)
			}
		}

		if writer != nil {
			if err := writer.Write(img); err != nil {
				return fmt.Errorf("error writing frame %d: %w", frameIndex, err)
			}
		}

		frameIndex++
	}

	log.Printf("Processed %d frames\n", frameIndex)

	if snap != nil {
		for _, line := range snap.Summary() {
			log.Println(line)
		}
	}

	return nil
}

// nextFrameDets parses the next line of the detections file.  A video
// longer than the detections file is processed with empty frames.
func nextFrameDets(scanner *bufio.Scanner) ([]tracker.Detection, error) {

	if !scanner.Scan() {

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading detections: %w", err)
		}

		return nil, nil
	}

	var frame frameDets

	if err := json.Unmarshal(scanner.Bytes(), &frame); err != nil {
		return nil, fmt.Errorf("error parsing detections: %w", err)
	}

	out := make([]tracker.Detection, 0, len(frame.Detections))

	for _, d := range frame.Detections {
		out = append(out, tracker.NewDetection(d.Class, d.Prob,
			tracker.NewRect(d.Box[0], d.Box[1], d.Box[2], d.Box[3])))
	}

	return out, nil
}
