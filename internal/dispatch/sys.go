package dispatch

import (
	"net"

	"github.com/gorilla/websocket"

	"github.com/sputnick1124/uiua/internal/catalogue"
	"github.com/sputnick1124/uiua/internal/errorsx"
	"github.com/sputnick1124/uiua/internal/value"
	"github.com/sputnick1124/uiua/internal/vm"
)

// dispatchSys routes the &-prefixed system primitives to rt.Backend().
// Handles (listeners, connections, upgraders) ride the stack as their
// native Go types; only value.Value and *vm.Function are expected
// elsewhere, but Sys-class code never leaves the primitive that created
// the handle without also consuming it, so the stack-type discipline
// the rest of the dispatcher relies on is preserved in practice.
func dispatchSys(rt *vm.Runtime, p catalogue.Primitive) error {
	switch p {
	case catalogue.SysPrint:
		v, err := rt.PopValue("line")
		if err != nil {
			return err
		}
		rt.Backend().Print(v.String())
		return nil
	case catalogue.SysFReadAll:
		path, err := rt.PopValue("path")
		if err != nil {
			return err
		}
		data, err := rt.Backend().ReadFileAll(path.String())
		if err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		rt.Push(bytesValue(data))
		return nil
	case catalogue.SysFWriteAll:
		data, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		path, err := rt.PopValue("1")
		if err != nil {
			return err
		}
		b, ok := valueBytes(data)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "&fwa: expected a byte array", rt.Span())
		}
		if err := rt.Backend().WriteFileAll(path.String(), b); err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		return nil
	case catalogue.SysFType:
		path, err := rt.PopValue("path")
		if err != nil {
			return err
		}
		rt.Push(value.Number(float64(rt.Backend().FileType(path.String()))))
		return nil
	case catalogue.SysTcpListen:
		addr, err := rt.PopValue("addr")
		if err != nil {
			return err
		}
		l, err := rt.Backend().TCPListen(addr.String())
		if err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		rt.Push(l)
		return nil
	case catalogue.SysTcpAccept:
		h, err := rt.Pop("listener")
		if err != nil {
			return err
		}
		l, ok := h.(net.Listener)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "&tcpa: expected a listener handle", rt.Span())
		}
		c, err := rt.Backend().TCPAccept(l)
		if err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		rt.Push(c)
		return nil
	case catalogue.SysTcpSend:
		data, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		h, err := rt.Pop("1")
		if err != nil {
			return err
		}
		c, ok := h.(net.Conn)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "&tcps: expected a connection handle", rt.Span())
		}
		b, ok := valueBytes(data)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "&tcps: expected a byte array", rt.Span())
		}
		if err := rt.Backend().TCPSend(c, b); err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		return nil
	case catalogue.SysWsListen:
		addr, err := rt.PopValue("addr")
		if err != nil {
			return err
		}
		up, err := rt.Backend().WSListen(addr.String())
		if err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		rt.Push(up)
		return nil
	case catalogue.SysWsSend:
		msg, err := rt.PopValue("2")
		if err != nil {
			return err
		}
		h, err := rt.Pop("1")
		if err != nil {
			return err
		}
		conn, ok := h.(*websocket.Conn)
		if !ok {
			return errorsx.New(errorsx.TypeMismatch, "&wss: expected a websocket connection handle", rt.Span())
		}
		if err := rt.Backend().WSSend(conn, msg.String()); err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		return nil
	case catalogue.SysHttpGet:
		url, err := rt.PopValue("url")
		if err != nil {
			return err
		}
		data, err := rt.Backend().HTTPGet(url.String())
		if err != nil {
			return errorsx.New(errorsx.ThrowKind, err.Error(), rt.Span())
		}
		rt.Push(bytesValue(data))
		return nil
	default:
		return errorsx.New(errorsx.InternalInvariant, "unhandled sys primitive "+p.Name(), rt.Span())
	}
}

func bytesValue(b []byte) value.Value {
	elems := make([]interface{}, len(b))
	for i, bb := range b {
		elems[i] = float64(bb)
	}
	return value.Value{Kind: value.KindByte, Shape: []int{len(b)}, Elems: elems}
}

func valueBytes(v value.Value) ([]byte, bool) {
	ints, ok := v.AsInts()
	if !ok {
		return nil, false
	}
	out := make([]byte, len(ints))
	for i, n := range ints {
		out[i] = byte(n)
	}
	return out, true
}
