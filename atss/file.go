package atss

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Paths gives the sample file and the side-car of identity inside dir.
func Paths(dir string, identity Identity) (string, string, error) {
	name, err := Filename(identity)
	if err != nil {
		return "", "", err
	}
	base := filepath.Join(dir, name)
	return base + SampleExtension, base + SidecarExtension, nil
}

// Write stores the side-car of channel in dir and returns its path. The
// sample file is written separately.
func Write(dir string, channel Channel) (string, error) {
	_, sidecarPath, err := Paths(dir, channel.Identity)
	if err != nil {
		return "", err
	}
	bs, err := EncodeSidecar(channel)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(sidecarPath, bs, 0644); err != nil {
		return "", errors.Wrap(err, "Write error")
	}
	return sidecarPath, nil
}

func trimExtension(path string) string {
	for _, ext := range []string{SampleExtension, SidecarExtension} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// Read loads a channel from either file of the pair. The identity comes from
// the file name and the sample count from the size of the sample file. A
// side-car without its anchor key leaves the defaults in place.
func Read(path string) (Channel, error) {
	base := trimExtension(path)
	identity, err := ParseFilename(base)
	if err != nil {
		return Channel{}, err
	}

	channel := NewChannel()
	channel.Identity = identity

	sampleInfo, sampleErr := os.Stat(base + SampleExtension)
	switch {
	case sampleErr == nil:
		channel.Samples = sampleInfo.Size() / SampleWidth
	case !os.IsNotExist(sampleErr):
		return Channel{}, errors.Wrap(sampleErr, "Read error")
	}

	bs, err := os.ReadFile(base + SidecarExtension)
	switch {
	case err == nil:
		if _, err := DecodeSidecar(bs, &channel); err != nil {
			return Channel{}, errors.Wrapf(err, "Read error: %s", base+SidecarExtension)
		}
	case os.IsNotExist(err) && sampleErr == nil:
	default:
		return Channel{}, errors.Wrap(err, "Read error")
	}
	return channel, nil
}
