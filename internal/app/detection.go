package app

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// detectLightMode guesses whether the terminal has a light background so the
// default theme stays readable. Best effort only; dark wins on any doubt.
func detectLightMode() bool {
	if isLight, err := checkTerminalColorOSC11(); err == nil {
		return isLight
	}
	if isLight, err := checkCOLORFGBG(); err == nil {
		return isLight
	}
	return false
}

// checkTerminalColorOSC11 asks the terminal for its background color using
// the OSC 11 query. Must run before termui owns the terminal.
func checkTerminalColorOSC11() (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return false, err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	query := "\033]11;?\007"
	if _, err := os.Stdout.Write([]byte(query)); err != nil {
		return false, err
	}

	responseChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(os.Stdin)
		var response []byte
		for {
			b, err := reader.ReadByte()
			if err != nil {
				errChan <- err
				return
			}
			response = append(response, b)
			if b == 0x07 {
				break
			}
			if len(response) >= 2 && response[len(response)-2] == 0x1b && response[len(response)-1] == 0x5c {
				break
			}
			if len(response) > 100 {
				break
			}
		}
		responseChan <- string(response)
	}()

	select {
	case resp := <-responseChan:
		return parseOSC11Response(resp)
	case <-errChan:
		return false, fmt.Errorf("error reading response")
	case <-time.After(100 * time.Millisecond):
		return false, fmt.Errorf("timeout waiting for OSC 11 response")
	}
}

func parseOSC11Response(resp string) (bool, error) {
	start := strings.Index(resp, "rgb:")
	if start == -1 {
		return false, fmt.Errorf("invalid response format")
	}

	parts := strings.Split(resp[start+4:], "/")
	if len(parts) < 3 {
		return false, fmt.Errorf("invalid color format")
	}

	r, err1 := strconv.ParseUint(cleanHex(parts[0]), 16, 16)
	g, err2 := strconv.ParseUint(cleanHex(parts[1]), 16, 16)
	b, err3 := strconv.ParseUint(cleanHex(parts[2]), 16, 16)
	if err1 != nil || err2 != nil || err3 != nil {
		return false, fmt.Errorf("error parsing hex")
	}

	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return luminance > 65535.0*0.5, nil
}

func cleanHex(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			sb.WriteRune(c)
		} else {
			break
		}
	}
	return sb.String()
}

func checkCOLORFGBG() (bool, error) {
	colorFGBG := os.Getenv("COLORFGBG")
	if colorFGBG == "" {
		return false, fmt.Errorf("COLORFGBG not set")
	}

	parts := strings.Split(colorFGBG, ";")
	if len(parts) != 2 {
		return false, fmt.Errorf("invalid COLORFGBG format")
	}

	bg, err := strconv.Atoi(parts[1])
	if err != nil {
		return false, err
	}

	switch bg {
	case 7, 11, 14, 15, 231, 255:
		return true, nil
	}
	return false, nil
}
