package tags

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

const (
	// opusSampleRate is the fixed granule rate of Opus streams.
	opusSampleRate = 48000

	oggMagic           = "OggS"
	oggPageHeaderSize  = 27
	vorbisIDHeaderSize = 30
)

var errNoDuration = errors.New("could not determine duration")

// ReadDuration probes the stream length of a music file without decoding it fully.
func ReadDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtFLAC:
		return flacDuration(path)
	case ExtMP3, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
	default:
		return 0, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	switch ext {
	case ExtMP3:
		return mp3Duration(f)
	case ExtM4A, ExtMP4:
		return m4aDuration(f)
	default:
		return oggDuration(f)
	}
}

func mp3Duration(f *os.File) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}
	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}
	samples := max(decoder.SampleCount(), 0)
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second)), nil
}

// flacDuration reads total samples and sample rate from the STREAMINFO block.
func flacDuration(path string) (time.Duration, error) {
	file, err := goflac.ParseFile(path)
	if err != nil {
		// Files with a prepended ID3v2 tag confuse go-flac
		return flacDurationWithBeep(path)
	}

	for _, meta := range file.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 |
			int64(data[16])<<8 | int64(data[17])
		if sampleRate == 0 {
			return 0, errNoDuration
		}
		return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), nil
	}
	return flacDurationWithBeep(path)
}

func flacDurationWithBeep(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return 0, err
	}
	streamer, format, err := flac.Decode(f)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

func m4aDuration(f *os.File) (time.Duration, error) {
	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	return container.Duration(), nil
}

// oggDuration divides the granule position of the last Ogg page by the
// stream's granule rate.
func oggDuration(f *os.File) (time.Duration, error) {
	rate, err := oggGranuleRate(f)
	if err != nil {
		return 0, err
	}

	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	searchSize := min(int64(65536), fi.Size())
	if _, err := f.Seek(-searchSize, io.SeekEnd); err != nil {
		return 0, err
	}

	buf := make([]byte, searchSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	buf = buf[:n]

	for i := len(buf) - oggPageHeaderSize; i >= 0; i-- {
		if string(buf[i:i+4]) != oggMagic {
			continue
		}
		granule := int64(binary.LittleEndian.Uint64(buf[i+6 : i+14]))
		if granule > 0 {
			return time.Duration(float64(granule) / float64(rate) * float64(time.Second)), nil
		}
		break
	}
	return 0, errNoDuration
}

// oggGranuleRate reads the codec identification packet at the start of the
// first page. Opus granules always count 48kHz samples; Vorbis granules count
// samples at the rate stored in its identification header.
func oggGranuleRate(f *os.File) (int, error) {
	head := make([]byte, oggPageHeaderSize+255+vorbisIDHeaderSize)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	head = head[:n]
	if len(head) < oggPageHeaderSize || string(head[:4]) != oggMagic {
		return 0, errors.New("ogg: missing page header")
	}

	start := oggPageHeaderSize + int(head[26])
	if start > len(head) {
		return 0, errors.New("ogg: truncated first page")
	}
	packet := head[start:]

	switch {
	case len(packet) >= 8 && string(packet[:8]) == "OpusHead":
		return opusSampleRate, nil
	case len(packet) >= 16 && packet[0] == 1 && string(packet[1:7]) == "vorbis":
		rate := int(binary.LittleEndian.Uint32(packet[12:16]))
		if rate == 0 {
			return 0, errors.New("vorbis: invalid sample rate")
		}
		return rate, nil
	}
	return 0, errors.New("ogg: unsupported codec")
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Size is a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
