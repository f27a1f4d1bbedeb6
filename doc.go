/*
go-objectcount is a tracking-and-counting engine for video object
detection pipelines.  Given a per-frame stream of detections (bounding
boxes, class ids, confidences) from an external detector it maintains
stable object identities across frames, detects tracked objects crossing
user-defined lines and entering or leaving user-defined zones, and
aggregates these events into running counts broken down by class and
counter.

The engine is single-threaded and frame-sequential.  Process must be
called with strictly increasing frame indexes and is not reentrant,
concurrent callers must serialize access themselves.  Running the
detection model, video decoding and on-screen display are all external
collaborators, see the example subdirectory for a runnable demo wiring
the engine to recorded detections over a video file.
*/
package objectcount
