package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// progressInterval is how often streamed renders report progress
const progressInterval = 200 * time.Millisecond

// ProgressUpdate is a progress snapshot sent via SSE
type ProgressUpdate struct {
	Done      int64   `json:"done"`
	Total     int64   `json:"total"`
	Percent   float64 `json:"percent"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// CompleteEvent is the final SSE event of a streamed render
type CompleteEvent struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// handleRender renders a scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		writeError(w, statusFor(err), fmt.Errorf("invalid request: %w", err))
		return
	}

	logger := NewWebLogger(renderID(), nil)
	raytracer := renderer.NewRaytracer(req.Scene, req.Config, logger)
	img, stats := raytracer.Render()

	var buf bytes.Buffer
	if err := img.WritePNG(&buf, req.Bias); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.SamplesPerPixel))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// renderOutcome carries the result of a render goroutine
type renderOutcome struct {
	img   *renderer.Image
	stats renderer.RenderStats
}

// handleRenderStream renders a scene while streaming console lines and
// progress via SSE, finishing with a "complete" event that carries the PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		writeError(w, statusFor(err), fmt.Errorf("invalid request: %w", err))
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()
	start := time.Now()

	consoleChan := make(chan ConsoleMessage, 50)
	progressChan := make(chan ProgressUpdate, 16)
	doneChan := make(chan renderOutcome, 1)

	raytracer := renderer.NewRaytracer(req.Scene, req.Config, NewWebLogger(renderID(), consoleChan))

	reportCtx, stopReport := context.WithCancel(ctx)
	defer stopReport()
	go raytracer.Progress().Report(reportCtx, progressInterval, &sseProgressSink{updates: progressChan, start: start})

	// Render cannot be interrupted; a disconnected client only stops the stream
	go func() {
		img, stats := raytracer.Render()
		doneChan <- renderOutcome{img: img, stats: stats}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-consoleChan:
			if err := s.sendSSEJSON(w, flusher, "console", msg); err != nil {
				return
			}

		case update := <-progressChan:
			if err := s.sendSSEJSON(w, flusher, "progress", update); err != nil {
				return
			}

		case outcome := <-doneChan:
			stopReport()
			s.drainConsole(w, flusher, consoleChan)

			imageData, err := imageToBase64PNG(outcome.img, req.Bias)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}
			s.sendSSEJSON(w, flusher, "complete", CompleteEvent{
				ImageData: imageData,
				Width:     outcome.img.Width(),
				Height:    outcome.img.Height(),
				Stats:     newStats(outcome.stats),
			})
			return
		}
	}
}

// drainConsole forwards console messages still buffered when the render ends
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendSSEJSON(w, flusher, "console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// sseProgressSink adapts progress snapshots to SSE updates. Snapshots are
// dropped rather than blocking the reporter when the stream falls behind.
type sseProgressSink struct {
	updates chan<- ProgressUpdate
	start   time.Time
}

func (p *sseProgressSink) Update(done, total int64) {
	update := ProgressUpdate{
		Done:      done,
		Total:     total,
		ElapsedMs: time.Since(p.start).Milliseconds(),
	}
	if total > 0 {
		update.Percent = 100 * float64(done) / float64(total)
	}
	select {
	case p.updates <- update:
	default:
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends v as the JSON payload of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image, bias float64) (string, error) {
	var buf bytes.Buffer
	if err := img.WritePNG(&buf, bias); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func renderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
