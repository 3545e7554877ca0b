package main

// byteSource yields raw terminal input one byte at a time. ok is false when
// the read timed out before any byte arrived.
type byteSource interface {
	readByte() (b byte, ok bool, err error)
}

type decodeState uint8

const (
	stateGround decodeState = iota
	stateEscape
	stateCSI
	stateCSIParam
	stateSS3
)

// maxCSIParams bounds how many parameter bytes of a CSI sequence are kept.
// Longer sequences are still read through to their final byte.
const maxCSIParams = 8

type keyDecoder struct {
	src    byteSource
	state  decodeState
	params [maxCSIParams]byte
	nparam int
	// bogus marks a CSI sequence that can no longer name a key
	bogus bool
}

func newKeyDecoder(src byteSource) *keyDecoder {
	return &keyDecoder{src: src}
}

// ReadKey returns one logical key. ok is false when no input arrived within
// the read timeout; a sequence cut short by a timeout decodes as escKey.
func (d *keyDecoder) ReadKey() (key int, ok bool, err error) {
	d.reset()
	b, has, err := d.src.readByte()
	if err != nil || !has {
		return 0, false, err
	}
	for {
		if key, done := d.feed(b); done {
			return key, true, nil
		}
		b, has, err = d.src.readByte()
		if err != nil {
			return 0, false, err
		}
		if !has {
			d.reset()
			return escKey, true, nil
		}
	}
}

func (d *keyDecoder) reset() {
	d.state = stateGround
	d.nparam = 0
	d.bogus = false
}

// feed advances the state machine by one byte. done reports that key holds a
// complete event and the decoder is back in the ground state.
func (d *keyDecoder) feed(b byte) (key int, done bool) {
	switch d.state {
	case stateGround:
		if b == escKey {
			d.state = stateEscape
			return 0, false
		}
		return int(b), true
	case stateEscape:
		switch b {
		case '[':
			d.state = stateCSI
			return 0, false
		case 'O':
			d.state = stateSS3
			return 0, false
		}
	case stateCSI, stateCSIParam:
		switch {
		case b >= 0x20 && b <= 0x3f:
			// parameter and intermediate bytes
			d.state = stateCSIParam
			if (isDigitByte(b) || b == ';') && d.nparam < maxCSIParams {
				d.params[d.nparam] = b
				d.nparam++
			} else {
				d.bogus = true
			}
			return 0, false
		case b >= 0x40 && b <= 0x7e:
			k, ok := d.csiKey(b)
			d.reset()
			if !ok {
				k = escKey
			}
			return k, true
		}
	case stateSS3:
		if k, ok := finalKey(b); ok {
			d.reset()
			return k, true
		}
	}
	d.reset()
	return escKey, true
}

// csiKey maps a complete CSI sequence ending in final to a key.
func (d *keyDecoder) csiKey(final byte) (int, bool) {
	switch {
	case d.bogus:
		return 0, false
	case d.nparam == 0:
		return finalKey(final)
	case final == '~' && d.nparam == 1:
		return tildeKey(d.params[0])
	}
	return 0, false
}

func finalKey(b byte) (int, bool) {
	switch b {
	case 'A':
		return arrowUp, true
	case 'B':
		return arrowDown, true
	case 'C':
		return arrowRight, true
	case 'D':
		return arrowLeft, true
	case 'H':
		return homeKey, true
	case 'F':
		return endKey, true
	}
	return 0, false
}

func tildeKey(p byte) (int, bool) {
	switch p {
	case '1', '7':
		return homeKey, true
	case '3':
		return delKey, true
	case '4', '8':
		return endKey, true
	case '5':
		return pageUp, true
	case '6':
		return pageDown, true
	}
	return 0, false
}
