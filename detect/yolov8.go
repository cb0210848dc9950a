package detect

import (
	"fmt"
	"image/color"

	"github.com/mihaiciobotaru/CarSurveillance/preprocess"
	ort "github.com/yalue/onnxruntime_go"
	"gocv.io/x/gocv"
)

// letterbox padding color used by YOLO models
var padColor = color.RGBA{R: 114, G: 114, B: 114, A: 255}

// InitRuntime loads the onnxruntime shared library and initializes the
// inference environment.  Must be called once before creating any detectors.
// An empty libPath uses the default library search path
func InitRuntime(libPath string) error {

	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}

	return ort.InitializeEnvironment()
}

// DestroyRuntime releases the inference environment
func DestroyRuntime() error {
	return ort.DestroyEnvironment()
}

// YOLOv8Params defines the parameters for running a YOLOv8 ONNX model
type YOLOv8Params struct {
	// InputWidth is the width of the model input tensor
	InputWidth int
	// InputHeight is the height of the model input tensor
	InputHeight int
	// ObjectClassNum is the number of object classes the model was
	// trained with
	ObjectClassNum int
	// BoxThreshold is the minimum confidence score required for a bounding
	// box to be considered for processing
	BoxThreshold float32
	// NMSThreshold is the Non-Maximum Suppression threshold defining the
	// maximum allowed Intersection over Union (IoU) between two bounding
	// boxes for both to be kept
	NMSThreshold float32
	// Classes restricts results to the given class indices.  A nil slice
	// keeps all classes
	Classes []int
	// InputName and OutputName are the model graph tensor names
	InputName  string
	OutputName string
	// HalfPrecision is set for models exported with float16 tensors
	HalfPrecision bool
}

// VehicleParams returns YOLOv8Params configured for surveillance of road
// vehicles using a model trained on the COCO dataset.  The low box threshold
// keeps partially occluded parked cars, overlap is resolved by NMS
func VehicleParams() YOLOv8Params {
	return YOLOv8Params{
		InputWidth:     640,
		InputHeight:    640,
		ObjectClassNum: 80,
		BoxThreshold:   0.10,
		NMSThreshold:   0.35,
		Classes: []int{
			ClassCar, ClassMotorcycle, ClassBus, ClassTruck,
		},
		InputName:  "images",
		OutputName: "output0",
	}
}

// YOLOv8 is a Detector running a YOLOv8 ONNX model through onnxruntime
type YOLOv8 struct {
	// Params are the model configuration parameters
	Params YOLOv8Params

	session *ort.AdvancedSession

	// float32 tensors used at full precision
	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]

	// raw buffers used at half precision
	inputF16  *ort.CustomDataTensor
	outputF16 *ort.CustomDataTensor
	inBufF16  []byte
	outBufF16 []byte

	// classSet is the allowed class lookup built from Params.Classes
	classSet map[int]bool
	// boxCount is the number of anchor boxes the model outputs
	boxCount int
}

// NewYOLOv8 loads the given ONNX model file and returns a vehicle Detector.
// InitRuntime must have been called first
func NewYOLOv8(modelFile string, p YOLOv8Params) (*YOLOv8, error) {

	y := &YOLOv8{
		Params:   p,
		classSet: make(map[int]bool),
	}

	for _, c := range p.Classes {
		y.classSet[c] = true
	}

	// anchor boxes over the three YOLOv8 detection strides
	for _, stride := range []int{8, 16, 32} {
		y.boxCount += (p.InputWidth / stride) * (p.InputHeight / stride)
	}

	inputShape := ort.NewShape(1, 3, int64(p.InputHeight), int64(p.InputWidth))
	outputShape := ort.NewShape(1, int64(4+p.ObjectClassNum), int64(y.boxCount))

	var inputs, outputs []ort.ArbitraryTensor
	var err error

	if p.HalfPrecision {
		y.inBufF16 = make([]byte, 2*3*p.InputHeight*p.InputWidth)
		y.outBufF16 = make([]byte, 2*(4+p.ObjectClassNum)*y.boxCount)

		y.inputF16, err = ort.NewCustomDataTensor(inputShape, y.inBufF16,
			ort.TensorElementDataTypeFloat16)

		if err != nil {
			return nil, fmt.Errorf("error creating input tensor: %w", err)
		}

		y.outputF16, err = ort.NewCustomDataTensor(outputShape, y.outBufF16,
			ort.TensorElementDataTypeFloat16)

		if err != nil {
			y.inputF16.Destroy()
			return nil, fmt.Errorf("error creating output tensor: %w", err)
		}

		inputs = []ort.ArbitraryTensor{y.inputF16}
		outputs = []ort.ArbitraryTensor{y.outputF16}

	} else {
		y.input, err = ort.NewEmptyTensor[float32](inputShape)

		if err != nil {
			return nil, fmt.Errorf("error creating input tensor: %w", err)
		}

		y.output, err = ort.NewEmptyTensor[float32](outputShape)

		if err != nil {
			y.input.Destroy()
			return nil, fmt.Errorf("error creating output tensor: %w", err)
		}

		inputs = []ort.ArbitraryTensor{y.input}
		outputs = []ort.ArbitraryTensor{y.output}
	}

	y.session, err = ort.NewAdvancedSession(modelFile,
		[]string{p.InputName}, []string{p.OutputName},
		inputs, outputs, nil)

	if err != nil {
		y.destroyTensors()
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return y, nil
}

// Detect runs vehicle detection on the given image frame
func (y *YOLOv8) Detect(img gocv.Mat) ([]Result, error) {

	if img.Empty() {
		return nil, fmt.Errorf("empty input image")
	}

	resizer := preprocess.NewResizer(img.Cols(), img.Rows(),
		y.Params.InputWidth, y.Params.InputHeight)
	defer resizer.Close()

	// model expects RGB ordering
	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)

	boxed := gocv.NewMat()
	defer boxed.Close()
	resizer.LetterBoxResize(rgb, &boxed, padColor)

	if err := y.fillInput(boxed); err != nil {
		return nil, err
	}

	if err := y.session.Run(); err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}

	return y.decode(y.outputData(), resizer), nil
}

// fillInput normalizes the letterboxed image into the CHW float input tensor
func (y *YOLOv8) fillInput(boxed gocv.Mat) error {

	data, err := boxed.DataPtrUint8()

	if err != nil {
		return fmt.Errorf("error accessing image data: %w", err)
	}

	channelSize := y.Params.InputWidth * y.Params.InputHeight

	var buf []float32

	if y.Params.HalfPrecision {
		buf = make([]float32, 3*channelSize)
	} else {
		buf = y.input.GetData()
	}

	// HWC uint8 to CHW float32 in the 0..1 range
	for i := 0; i < channelSize; i++ {
		buf[i] = float32(data[i*3]) / 255.0
		buf[channelSize+i] = float32(data[i*3+1]) / 255.0
		buf[channelSize*2+i] = float32(data[i*3+2]) / 255.0
	}

	if y.Params.HalfPrecision {
		f32ToF16Buf(buf, y.inBufF16)
	}

	return nil
}

// outputData returns the model output as float32, converting from half
// precision when needed
func (y *YOLOv8) outputData() []float32 {

	if y.Params.HalfPrecision {
		return f16BufToFloat32(y.outBufF16)
	}

	return y.output.GetData()
}

// decode converts the raw output tensor into detection results in source
// image pixel space
func (y *YOLOv8) decode(out []float32, resizer *preprocess.Resizer) []Result {

	cands := make([]candidate, 0, 16)

	// output layout is one channel per attribute, boxCount values each:
	// cx, cy, w, h then one score channel per class
	for a := 0; a < y.boxCount; a++ {

		bestClass := -1
		bestScore := float32(0)

		for c := 0; c < y.Params.ObjectClassNum; c++ {
			score := out[(4+c)*y.boxCount+a]

			if score > bestScore {
				bestScore = score
				bestClass = c
			}
		}

		if bestScore < y.Params.BoxThreshold {
			continue
		}

		if len(y.classSet) > 0 && !y.classSet[bestClass] {
			continue
		}

		cx := out[a]
		cy := out[y.boxCount+a]
		w := out[2*y.boxCount+a]
		h := out[3*y.boxCount+a]

		cands = append(cands, candidate{
			class: bestClass,
			score: bestScore,
			left:  cx - w/2,
			top:   cy - h/2,
			right: cx + w/2,
			bottm: cy + h/2,
		})
	}

	kept := nms(cands, y.Params.NMSThreshold)

	results := make([]Result, 0, len(kept))

	for _, c := range kept {
		left, top, right, bottom := resizer.TranslateBox(
			c.left, c.top, c.right, c.bottm)

		results = append(results, Result{
			Class:       c.class,
			Probability: c.score,
			Box: BoxRect{
				Left:   left,
				Top:    top,
				Right:  right,
				Bottom: bottom,
			},
		})
	}

	return results
}

func (y *YOLOv8) destroyTensors() {

	if y.input != nil {
		y.input.Destroy()
	}
	if y.output != nil {
		y.output.Destroy()
	}
	if y.inputF16 != nil {
		y.inputF16.Destroy()
	}
	if y.outputF16 != nil {
		y.outputF16.Destroy()
	}
}

// Close releases the model session and tensors
func (y *YOLOv8) Close() error {

	if y.session != nil {
		y.session.Destroy()
	}

	y.destroyTensors()

	return nil
}
