package outerterm

import "io"

// ReadLoop reads raw bytes from the terminal and forwards them on out,
// one read's worth of bytes per send, until the terminal hits EOF/error
// or stop is closed. It runs in its own goroutine and does nothing but
// forward — the event loop's select is the only place those bytes are
// interpreted, per spec.md §9's single-writer discipline. Grounded on the
// teacher's RawInputReader.readLoop, with the prefix-key detection moved
// out to internal/dispatch.
func (t *Terminal) ReadLoop(out chan<- []byte, stop <-chan struct{}) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := t.tty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- data:
			case <-stop:
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				return
			}
			select {
			case <-stop:
				return
			default:
				continue
			}
		}
		select {
		case <-stop:
			return
		default:
		}
	}
}
