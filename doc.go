/*
CarSurveillance estimates parking space occupancy and vehicle queue length
from fixed surveillance camera footage.  A pretrained object detector finds
vehicles in each frame, the calibrated region of interest is perspective
corrected into a canonical top-down frame, and the warped vehicle center
points are evaluated against the calibrated slot bands or queue thresholds.

Calibration is an explicit immutable value created once per camera view,
either from DefaultCalibration or loaded from a JSON file.  All evaluations
are pure functions of the frame, the detections and the calibration, so
independent frames can be processed in parallel.

See the task package for batch dataset processing and cmd/carsurveillance
for the command line interface.
*/
package carsurveillance
