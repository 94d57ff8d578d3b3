package atss

import (
	"fmt"
	"strings"
)

func ValidateIdentity(identity Identity) error {
	problems := identityProblems(identity)
	if len(problems) > 0 {
		return ValidationError{Subject: "identity", Problems: problems}
	}
	return nil
}

func identityProblems(identity Identity) []string {
	problems := make([]string, 0)
	if identity.Serial <= 0 {
		problems = append(problems, fmt.Sprintf("serial %d must be positive", identity.Serial))
	}
	if identity.System == "" || strings.Contains(identity.System, "_") {
		problems = append(problems, fmt.Sprintf(`system "%s" must be set and free of "_"`, identity.System))
	}
	if identity.ChannelNo < 0 {
		problems = append(problems, fmt.Sprintf("channel number %d must not be negative", identity.ChannelNo))
	}
	if identity.ChannelType == "" || strings.Contains(identity.ChannelType, "_") {
		problems = append(problems, fmt.Sprintf(`channel type "%s" must be set and free of "_"`, identity.ChannelType))
	}
	if identity.SampleRate <= 0 {
		problems = append(problems, fmt.Sprintf("sample rate %g must be positive", identity.SampleRate))
	}
	return problems
}

func calibrationProblems(calibration Calibration) []string {
	if len(calibration.F) == len(calibration.A) && len(calibration.F) == len(calibration.P) {
		return nil
	}
	return []string{
		fmt.Sprintf(
			"calibration arrays differ in length: f %d, a %d, p %d",
			len(calibration.F), len(calibration.A), len(calibration.P),
		),
	}
}

// Validate checks the identity and that the calibration arrays line up.
func Validate(channel Channel) error {
	problems := append(identityProblems(channel.Identity), calibrationProblems(channel.Calibration)...)
	if channel.Samples < 0 {
		problems = append(problems, fmt.Sprintf("samples %d must not be negative", channel.Samples))
	}
	if len(problems) > 0 {
		return ValidationError{Subject: "channel", Problems: problems}
	}
	return nil
}
