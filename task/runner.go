package task

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	carsurveillance "github.com/mihaiciobotaru/CarSurveillance"
	"github.com/mihaiciobotaru/CarSurveillance/detect"
	"github.com/mihaiciobotaru/CarSurveillance/video"
	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// Runner processes a dataset directory of images or videos, writing one
// results file per item.  Items are independent so they are processed in
// parallel across the detector pool
type Runner struct {
	// Pool provides the detectors used for parallel processing
	Pool *detect.Pool
	// Calibration is the camera geometry shared by every item
	Calibration carsurveillance.Calibration
	// Workers is the number of items processed concurrently.  Values
	// below one process items sequentially
	Workers int
}

// NewRunner returns a Runner over the given detector pool and calibration
func NewRunner(pool *detect.Pool, calib carsurveillance.Calibration,
	workers int) *Runner {

	if workers < 1 {
		workers = 1
	}

	return &Runner{
		Pool:        pool,
		Calibration: calib,
		Workers:     workers,
	}
}

// RunDir processes every dataset item in datasetDir for the given task and
// writes results files into outDir.  A failing item is logged and skipped,
// it never aborts the whole run.  Previous results files are removed first
// when removeOld is set
func (r *Runner) RunDir(ctx context.Context, datasetDir, outDir string,
	task carsurveillance.Task, removeOld bool) error {

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("error creating results folder: %w", err)
	}

	if removeOld {
		if err := removeOldResults(outDir); err != nil {
			return err
		}
	}

	ext := ".jpg"

	if task == carsurveillance.TaskQueueLength {
		ext = ".mp4"
	}

	entries, err := os.ReadDir(datasetDir)

	if err != nil {
		return fmt.Errorf("error reading dataset folder: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for _, entry := range entries {

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}

		itemName := entry.Name()
		name := strings.TrimSuffix(itemName, ext)
		itemPath := filepath.Join(datasetDir, itemName)

		g.Go(func() error {

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var err error

			switch task {
			case carsurveillance.TaskParkingOccupancy:
				err = r.processImage(itemPath,
					filepath.Join(datasetDir, name+"_query.txt"),
					filepath.Join(outDir, name+"_results.txt"))

			case carsurveillance.TaskQueueLength:
				err = r.processVideo(itemPath,
					filepath.Join(outDir, name+"_results.txt"))

			default:
				err = fmt.Errorf("unsupported task %s", task)
			}

			if err != nil {
				// skip the item, the rest of the run continues
				log.Printf("skipping %s: %v", itemName, err)
			}

			return nil
		})
	}

	return g.Wait()
}

// processImage evaluates parking occupancy for one image and writes the
// query results file
func (r *Runner) processImage(imgPath, queryPath, resultsPath string) error {

	queries, err := ReadQuery(queryPath)

	if err != nil {
		return err
	}

	img := gocv.IMRead(imgPath, gocv.IMReadColor)

	if img.Empty() {
		return fmt.Errorf("error reading image from %s", imgPath)
	}

	defer img.Close()

	slots, err := r.evaluate(img, func(p *carsurveillance.Processor,
		frame gocv.Mat) ([]bool, error) {
		return p.ParkingStatus(frame)
	})

	if err != nil {
		return err
	}

	return WriteResults(resultsPath, queries, slots)
}

// processVideo counts the vehicle queue on the final frame of one video and
// writes the count results file
func (r *Runner) processVideo(vidPath, resultsPath string) error {

	frame, err := video.LastFrame(vidPath)

	if err != nil {
		return err
	}

	defer frame.Close()

	count := 0

	_, err = r.evaluate(frame, func(p *carsurveillance.Processor,
		f gocv.Mat) ([]bool, error) {
		var qErr error
		count, qErr = p.QueueLength(f)
		return nil, qErr
	})

	if err != nil {
		return err
	}

	return WriteCount(resultsPath, count)
}

// evaluate borrows a detector from the pool and runs fn with a processor
// bound to it
func (r *Runner) evaluate(img gocv.Mat,
	fn func(*carsurveillance.Processor, gocv.Mat) ([]bool, error)) ([]bool, error) {

	det := r.Pool.Get()
	defer r.Pool.Return(det)

	proc, err := carsurveillance.NewProcessor(det, r.Calibration)

	if err != nil {
		return nil, err
	}

	return fn(proc, img)
}

// removeOldResults deletes previous results files from the output folder
func removeOldResults(outDir string) error {

	entries, err := os.ReadDir(outDir)

	if err != nil {
		return fmt.Errorf("error reading results folder: %w", err)
	}

	for _, entry := range entries {

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_results.txt") {
			continue
		}

		if err := os.Remove(filepath.Join(outDir, entry.Name())); err != nil {
			return fmt.Errorf("error removing old results: %w", err)
		}
	}

	return nil
}
