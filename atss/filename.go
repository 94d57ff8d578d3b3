package atss

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// SampleRateToString writes rates from about 1 Hz up as whole Hz and slower
// rates as a whole period in seconds: 256 -> "256Hz", 0.125 -> "8s".
func SampleRateToString(sampleRate float64) string {
	if sampleRate > 0.99 {
		return fmt.Sprintf("%dHz", int64(math.Round(sampleRate)))
	}
	if sampleRate <= 0 {
		return "0Hz"
	}
	return fmt.Sprintf("%ds", int64(math.Round(1/sampleRate)))
}

// Filename is the base name shared by the sample file and its side-car,
// e.g. 084_ADU-07e_C002_THx_512Hz.
func Filename(identity Identity) (string, error) {
	if err := ValidateIdentity(identity); err != nil {
		return "", err
	}
	name := strings.Join(
		[]string{
			fmt.Sprintf("%03d", identity.Serial),
			identity.System,
			fmt.Sprintf("C%03d", identity.ChannelNo),
			"T" + identity.ChannelType,
			SampleRateToString(identity.SampleRate),
		},
		"_",
	)
	return name, nil
}

// ParseFilename reads an identity back from a file name. Directories and
// the .atss or .json extension are ignored. Tags after serial and system
// may come in any order; a missing tag leaves its field at zero and unknown
// tags are skipped.
func ParseFilename(name string) (Identity, error) {
	base := filepath.Base(name)
	for _, ext := range []string{SampleExtension, SidecarExtension} {
		base = strings.TrimSuffix(base, ext)
	}

	tokens := strings.Split(base, "_")
	if len(tokens) < 2 {
		return Identity{}, ValidationError{
			Subject:  "file name " + name,
			Problems: []string{"expected at least serial and system"},
		}
	}

	identity := Identity{System: tokens[1]}
	problems := make([]string, 0)
	serial, err := strconv.Atoi(tokens[0])
	if err != nil {
		problems = append(problems, fmt.Sprintf(`serial "%s" is not a number`, tokens[0]))
	}
	identity.Serial = serial

	for _, token := range tokens[2:] {
		switch {
		case strings.HasPrefix(token, "C"):
			channelNo, err := strconv.Atoi(token[1:])
			if err != nil {
				problems = append(problems, fmt.Sprintf(`channel "%s" is not a number`, token))
				continue
			}
			identity.ChannelNo = channelNo
		case strings.HasPrefix(token, "T"):
			identity.ChannelType = token[1:]
		case startsWithDigit(token) && strings.HasSuffix(token, "Hz"):
			rate, err := strconv.ParseFloat(strings.TrimSuffix(token, "Hz"), 64)
			if err != nil {
				problems = append(problems, fmt.Sprintf(`sample rate "%s" is not a number`, token))
				continue
			}
			identity.SampleRate = rate
		case startsWithDigit(token) && strings.HasSuffix(token, "s"):
			period, err := strconv.ParseFloat(strings.TrimSuffix(token, "s"), 64)
			if err != nil || period == 0 {
				problems = append(problems, fmt.Sprintf(`sample period "%s" is not a number`, token))
				continue
			}
			identity.SampleRate = 1 / period
		}
	}

	if len(problems) > 0 {
		return identity, ValidationError{Subject: "file name " + name, Problems: problems}
	}
	return identity, nil
}

func startsWithDigit(token string) bool {
	return token != "" && unicode.IsDigit(rune(token[0]))
}
