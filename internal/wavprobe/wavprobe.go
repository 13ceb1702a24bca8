// Package wavprobe validates the audio files a chart's WavObjects
// definitions point at and reports their playable duration, the way a
// chart player needs to know how long a sample rings before deciding
// whether two notes overlap it.
package wavprobe

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/go-bms/bmscore/internal/model"
	"github.com/go-bms/bmscore/internal/objid"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 65534
)

// Result is one #WAVxx definition's probe outcome.
type Result struct {
	ID       objid.ObjId
	Path     string
	Seconds  float64
	SampleRate int64
	Err      error
}

// Probe resolves every WavObjects.Defs entry against baseDir and measures
// its duration. A missing or unreadable file is reported in Result.Err
// rather than aborting the whole batch, so one bad reference doesn't hide
// problems with the rest of a chart's samples.
func Probe(wavs model.WavObjects, baseDir string) []Result {
	results := make([]Result, 0, len(wavs.Defs))
	for id, path := range wavs.Defs {
		full := path
		if baseDir != "" {
			full = baseDir + string(os.PathSeparator) + path
		}
		seconds, rate, err := Length(full)
		results = append(results, Result{ID: id, Path: path, Seconds: seconds, SampleRate: rate, Err: err})
	}
	return results
}

// Length returns a WAV file's duration in seconds and its sample rate.
// PCM files are measured from the data chunk's byte length; non-PCM
// (compressed) files fall back to the decoder's own Duration.
func Length(filename string) (seconds float64, sampleRate int64, err error) {
	f, openErr := os.Open(filename)
	if openErr != nil {
		return 0, 0, fmt.Errorf("wavprobe: open: %w", openErr)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, 0, fmt.Errorf("wavprobe: %s is not a valid WAV file", filename)
	}
	d.ReadInfo()

	if int(d.WavAudioFormat) != wavFormatPCM && int(d.WavAudioFormat) != wavFormatExtensible {
		var dur time.Duration
		dur, err = d.Duration()
		if err != nil {
			return 0, 0, fmt.Errorf("wavprobe: duration (non-PCM): %w", err)
		}
		return dur.Seconds(), int64(d.SampleRate), nil
	}

	if d.SampleRate == 0 {
		return 0, 0, fmt.Errorf("wavprobe: %s has an invalid sample rate of 0", filename)
	}
	bytesPerSample := int64(d.BitDepth) / 8
	if bytesPerSample <= 0 {
		return 0, 0, fmt.Errorf("wavprobe: %s has an invalid bit depth %d", filename, d.BitDepth)
	}
	chans := int64(d.NumChans)
	if chans <= 0 {
		return 0, 0, fmt.Errorf("wavprobe: %s has an invalid channel count %d", filename, d.NumChans)
	}

	if !d.WasPCMAccessed() && d.PCMChunk == nil {
		if fwdErr := d.FwdToPCM(); fwdErr != nil {
			return 0, 0, fmt.Errorf("wavprobe: locate PCM chunk: %w", fwdErr)
		}
	}

	totalBytes := d.PCMLen()
	if totalBytes <= 0 {
		return 0, 0, fmt.Errorf("wavprobe: %s has no PCM data", filename)
	}
	frameSize := bytesPerSample * chans
	if frameSize == 0 {
		return 0, 0, fmt.Errorf("wavprobe: %s has a zero frame size", filename)
	}
	totalFrames := totalBytes / frameSize
	return float64(totalFrames) / float64(d.SampleRate), int64(d.SampleRate), nil
}
