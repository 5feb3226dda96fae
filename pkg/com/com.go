package com

type NetClient interface {
	Disconnect()
	Id() Uid
}

// NetMap tracks live connections by their transport-issued ids.
type NetMap[T NetClient] struct{ Map[Uid, T] }

func NewNetMap[T NetClient]() NetMap[T] {
	return NetMap[T]{Map: NewMap[Uid, T]()}
}

func (m *NetMap[T]) Add(client T)              { m.Put(client.Id(), client) }
func (m *NetMap[T]) Remove(client T)           { m.RemoveByKey(client.Id()) }
func (m *NetMap[T]) RemoveDisconnect(client T) { client.Disconnect(); m.Remove(client) }
