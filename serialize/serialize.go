package serialize

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/xlr-lang/xlr/tree"
)

// Magic and Version identify the stream header (spec.md §6).
const (
	Magic   uint32 = 0x05121968
	Version uint16 = 0x0101
)

// Serialize writes h (and everything reachable from it) to w as a single
// framed stream: a fixed header followed by one tag-value node encoding.
// h == 0 is written as a NULL (tree.Invalid) node.
func Serialize(g *tree.GC, h tree.Handle, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, Magic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, Version); err != nil {
		return err
	}
	enc := &encoder{interned: make(map[string]uint32)}
	frame, err := enc.encodeNode(g, h)
	if err != nil {
		return err
	}
	if _, err := bw.Write(frame); err != nil {
		return err
	}
	return bw.Flush()
}

// Deserialize reads a stream written by Serialize and rebuilds its tree in
// g, returning the root handle (0 for a NULL node).
func Deserialize(r io.Reader, g *tree.GC) (tree.Handle, error) {
	br := bufio.NewReader(r)
	var magic uint32
	var version uint16
	if err := binary.Read(br, binary.BigEndian, &magic); err != nil {
		return 0, err
	}
	if magic != Magic {
		return 0, fmt.Errorf("serialize: bad magic %#x, want %#x", magic, Magic)
	}
	if err := binary.Read(br, binary.BigEndian, &version); err != nil {
		return 0, err
	}
	if version != Version {
		return 0, fmt.Errorf("serialize: unsupported version %#x, want %#x", version, Version)
	}
	dec := &decoder{}
	return dec.decodeNode(br, g)
}

// encoder accumulates the intern table across one Serialize call.
type encoder struct {
	interned map[string]uint32 // string -> assigned index
	order    []string
}

// internIndex reports str's index, assigning it the next one on first use.
// The caller writes the string literally only when isNew is true.
func (e *encoder) internIndex(str string) (idx uint32, isNew bool) {
	if i, ok := e.interned[str]; ok {
		return i, false
	}
	idx = uint32(len(e.order))
	e.interned[str] = idx
	e.order = append(e.order, str)
	return idx, true
}

func (e *encoder) writeString(buf *bytes.Buffer, str string) error {
	idx, isNew := e.internIndex(str)
	if err := binary.Write(buf, binary.BigEndian, idx); err != nil {
		return err
	}
	if !isNew {
		return nil
	}
	data := []byte(str)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err := buf.Write(data)
	return err
}

// encodeNode returns h's full wire encoding: tag, payload length, payload.
// Children are encoded first and spliced into the payload whole, so the
// length prefix of every node (not just the root) covers its entire subtree.
func (e *encoder) encodeNode(g *tree.GC, h tree.Handle) ([]byte, error) {
	var payload bytes.Buffer

	if h == 0 {
		return frame(tree.Invalid, payload.Bytes()), nil
	}
	n := g.Node(h)
	if n == nil {
		return nil, fmt.Errorf("serialize: dangling handle %d", h)
	}

	if err := binary.Write(&payload, binary.BigEndian, uint32(n.Pos)); err != nil {
		return nil, err
	}

	switch n.Kind {
	case tree.Integer:
		if err := binary.Write(&payload, binary.BigEndian, n.IntVal); err != nil {
			return nil, err
		}
	case tree.Real:
		if err := binary.Write(&payload, binary.BigEndian, math.Float64bits(n.RealVal)); err != nil {
			return nil, err
		}
	case tree.Text:
		if err := e.writeString(&payload, n.Opening); err != nil {
			return nil, err
		}
		if err := e.writeString(&payload, n.Closing); err != nil {
			return nil, err
		}
		if err := e.writeString(&payload, n.TextVal); err != nil {
			return nil, err
		}
	case tree.Name:
		if err := e.writeString(&payload, n.NameVal); err != nil {
			return nil, err
		}
	case tree.Block:
		if err := e.writeString(&payload, n.Opening); err != nil {
			return nil, err
		}
		if err := e.writeString(&payload, n.Closing); err != nil {
			return nil, err
		}
		child, err := e.encodeNode(g, n.Child)
		if err != nil {
			return nil, err
		}
		payload.Write(child)
	case tree.Prefix, tree.Postfix:
		left, err := e.encodeNode(g, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.encodeNode(g, n.Right)
		if err != nil {
			return nil, err
		}
		payload.Write(left)
		payload.Write(right)
	case tree.Infix:
		if err := e.writeString(&payload, n.NameVal); err != nil {
			return nil, err
		}
		left, err := e.encodeNode(g, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.encodeNode(g, n.Right)
		if err != nil {
			return nil, err
		}
		payload.Write(left)
		payload.Write(right)
	default:
		return nil, fmt.Errorf("serialize: unknown node kind %v", n.Kind)
	}

	return frame(n.Kind, payload.Bytes()), nil
}

func frame(tag tree.Kind, payload []byte) []byte {
	var out bytes.Buffer
	out.WriteByte(byte(tag))
	binary.Write(&out, binary.BigEndian, uint32(len(payload)))
	out.Write(payload)
	return out.Bytes()
}

// decoder accumulates the intern table across one Deserialize call.
type decoder struct {
	table []string
}

func (d *decoder) readString(r *bufio.Reader) (string, error) {
	var idx uint32
	if err := binary.Read(r, binary.BigEndian, &idx); err != nil {
		return "", err
	}
	if int(idx) < len(d.table) {
		return d.table[idx], nil
	}
	if int(idx) != len(d.table) {
		return "", fmt.Errorf("serialize: out-of-order string index %d", idx)
	}
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", err
	}
	str := string(data)
	d.table = append(d.table, str)
	return str, nil
}

// decodeNode reads one tag-length-payload frame from r and rebuilds it in g.
func (d *decoder) decodeNode(r *bufio.Reader, g *tree.GC) (tree.Handle, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	tag := tree.Kind(tagByte)
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return 0, err
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, err
	}
	pr := bufio.NewReader(bytes.NewReader(payload))

	if tag == tree.Invalid {
		return 0, nil
	}

	var posVal uint32
	if err := binary.Read(pr, binary.BigEndian, &posVal); err != nil {
		return 0, err
	}
	pos := tree.Position(posVal)

	switch tag {
	case tree.Integer:
		var v int64
		if err := binary.Read(pr, binary.BigEndian, &v); err != nil {
			return 0, err
		}
		return g.NewInteger(pos, v), nil
	case tree.Real:
		var bits uint64
		if err := binary.Read(pr, binary.BigEndian, &bits); err != nil {
			return 0, err
		}
		return g.NewReal(pos, math.Float64frombits(bits)), nil
	case tree.Text:
		opening, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		closing, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		val, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		return g.NewText(pos, val, opening, closing), nil
	case tree.Name:
		val, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		return g.NewName(pos, val), nil
	case tree.Block:
		opening, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		closing, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		child, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		return g.NewBlock(pos, child, opening, closing), nil
	case tree.Prefix:
		left, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		right, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		return g.NewPrefix(pos, left, right), nil
	case tree.Postfix:
		left, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		right, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		return g.NewPostfix(pos, left, right), nil
	case tree.Infix:
		op, err := d.readString(pr)
		if err != nil {
			return 0, err
		}
		left, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		right, err := d.decodeNode(pr, g)
		if err != nil {
			return 0, err
		}
		return g.NewInfix(pos, op, left, right), nil
	}
	return 0, fmt.Errorf("serialize: unknown tag %d", tagByte)
}
