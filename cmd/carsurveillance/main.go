package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	carsurveillance "github.com/mihaiciobotaru/CarSurveillance"
	"github.com/mihaiciobotaru/CarSurveillance/detect"
	"github.com/mihaiciobotaru/CarSurveillance/occupancy"
	"github.com/mihaiciobotaru/CarSurveillance/render"
	"github.com/mihaiciobotaru/CarSurveillance/task"
	"github.com/mihaiciobotaru/CarSurveillance/video"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	modelFile := flag.String("m", "yolov8m.onnx", "YOLOv8 ONNX model file")
	ortLib := flag.String("lib", "", "Path to onnxruntime shared library, blank uses default search path")
	calibFile := flag.String("calib", "", "Camera calibration JSON file, blank uses the built in calibration")
	taskName := flag.String("task", "parking", "Task to run: \"parking\" or \"queue\"")
	inFile := flag.String("i", "", "Single image or video file to evaluate")
	dataDir := flag.String("dir", "", "Dataset folder to process in batch")
	outDir := flag.String("out", "", "Folder to write batch results to")
	gtDir := flag.String("gt", "", "Ground truth folder to compare batch results against")
	clean := flag.Bool("clean", false, "Remove previous results files before a batch run")
	saveFile := flag.String("save", "", "Save an annotated copy of the evaluated frame to this file")
	poolSize := flag.Int("j", 1, "Number of parallel detector instances for batch runs")

	flag.Parse()

	runTask, err := carsurveillance.ParseTask(*taskName)

	if err != nil {
		log.Fatal(err)
	}

	calib := carsurveillance.DefaultCalibration()

	if *calibFile != "" {
		calib, err = carsurveillance.LoadCalibration(*calibFile)

		if err != nil {
			log.Fatal("Error loading calibration: ", err)
		}
	}

	if err := detect.InitRuntime(*ortLib); err != nil {
		log.Fatal("Error initializing inference runtime: ", err)
	}

	defer detect.DestroyRuntime()

	switch {
	case *inFile != "":
		runSingle(*inFile, *modelFile, *saveFile, calib, runTask)

	case *dataDir != "":
		if *outDir == "" {
			log.Fatal("Batch runs need a results folder, set -out")
		}

		runBatch(*dataDir, *outDir, *gtDir, *modelFile, calib, runTask,
			*poolSize, *clean)

	default:
		log.Fatal("Nothing to do, set -i for a single file or -dir for a dataset folder")
	}
}

// runSingle evaluates one image or video file and prints the result
func runSingle(inFile, modelFile, saveFile string,
	calib carsurveillance.Calibration, runTask carsurveillance.Task) {

	det, err := detect.NewYOLOv8(modelFile, detect.VehicleParams())

	if err != nil {
		log.Fatal("Error loading model: ", err)
	}

	defer det.Close()

	proc, err := carsurveillance.NewProcessor(det, calib)

	if err != nil {
		log.Fatal("Error creating processor: ", err)
	}

	img, err := loadFrame(inFile, runTask)

	if err != nil {
		log.Fatal(err)
	}

	defer img.Close()

	switch runTask {
	case carsurveillance.TaskParkingOccupancy:
		slots, err := proc.ParkingStatus(img)

		if err != nil {
			log.Fatal("Error checking parking spaces: ", err)
		}

		for i, occupied := range slots {
			state := "Free"

			if occupied {
				state = "Occupied"
			}

			log.Printf("Parking space %d: %s", i+1, state)
		}

		if saveFile != "" {
			saveOverlay(saveFile, img, proc, slots)
		}

	case carsurveillance.TaskQueueLength:
		count, err := proc.QueueLength(img)

		if err != nil {
			log.Fatal("Error counting queue: ", err)
		}

		log.Printf("Vehicles queued: %d", count)
	}
}

// loadFrame loads the frame to evaluate, the last frame for videos and the
// image itself otherwise
func loadFrame(inFile string, runTask carsurveillance.Task) (gocv.Mat, error) {

	if strings.HasSuffix(inFile, ".mp4") || runTask == carsurveillance.TaskQueueLength {
		return video.LastFrame(inFile)
	}

	img := gocv.IMRead(inFile, gocv.IMReadColor)

	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("error reading image from %s", inFile)
	}

	return img, nil
}

// saveOverlay writes an annotated copy of the frame showing the calibrated
// region, detected vehicles and slot occupancy
func saveOverlay(saveFile string, img gocv.Mat,
	proc *carsurveillance.Processor, slots []bool) {

	frame := proc.PrepareFrame(img)
	defer frame.Close()

	font := render.DefaultFont()

	results, err := proc.Detector.Detect(frame)

	if err != nil {
		log.Printf("Error detecting for overlay: %v", err)
		return
	}

	render.Quadrilateral(&frame, proc.Calibration.ParkingRegion, font, 2)
	render.Points(&frame, detect.Centers(results), "Car", font)
	render.OccupancyLabels(&frame, slots, font)

	if ok := gocv.IMWrite(saveFile, frame); !ok {
		log.Printf("Failed to save overlay image to %s", saveFile)
		return
	}

	log.Printf("Saved overlay image to %s", saveFile)

	// top-down view of the warped region with the slot bands
	warped, warpedPts, err := occupancy.ExtractRegion(frame,
		proc.Calibration.ParkingRegion, detect.Centers(results))

	if err != nil {
		log.Printf("Error warping region for overlay: %v", err)
		return
	}

	defer warped.Close()

	render.SlotBands(&warped, proc.Calibration.Slots.Lines,
		proc.Calibration.Slots.FrameEdge, font)
	render.Points(&warped, warpedPts, "", font)

	warpedFile := strings.TrimSuffix(saveFile, ".jpg") + "-warped.jpg"

	if ok := gocv.IMWrite(warpedFile, warped); !ok {
		log.Printf("Failed to save warped image to %s", warpedFile)
		return
	}

	log.Printf("Saved warped region image to %s", warpedFile)
}

// runBatch processes a dataset folder and optionally compares the results
// against ground truth
func runBatch(dataDir, outDir, gtDir, modelFile string,
	calib carsurveillance.Calibration, runTask carsurveillance.Task,
	poolSize int, clean bool) {

	pool, err := detect.NewPool(poolSize, modelFile, detect.VehicleParams())

	if err != nil {
		log.Fatal("Error creating detector pool: ", err)
	}

	defer pool.Close()

	runner := task.NewRunner(pool, calib, poolSize)

	err = runner.RunDir(context.Background(), dataDir, outDir, runTask, clean)

	if err != nil {
		log.Fatal("Error processing dataset: ", err)
	}

	log.Printf("Results written to %s", outDir)

	if gtDir == "" {
		return
	}

	cmp, err := task.CompareResults(outDir, gtDir)

	if err != nil {
		log.Fatal("Error comparing results: ", err)
	}

	log.Printf("Ground truth: %d/%d matched", cmp.Matched, cmp.Total)

	for _, name := range cmp.Mismatched {
		log.Printf("  %s does not match", name)
	}
}
