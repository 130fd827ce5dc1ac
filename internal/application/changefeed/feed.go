package changefeed

import (
	"sync"
	"time"
)

// Event notifica que una colección de un dueño cambió. No transporta los
// datos: el suscriptor relee la colección por la API normal, por lo que las
// vistas derivadas son eventualmente consistentes respecto a la escritura.
type Event struct {
	OwnerID    string    `json:"-"`
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
}

type subscriber struct {
	ownerID     string
	collections map[string]struct{} // vacío = todas
	ch          chan Event
}

// Feed es un bus de cambios en proceso: reemplaza los listeners de snapshot
// del proveedor remoto con una capacidad genérica subscribe/unsubscribe por
// colección. Los publicadores nunca se bloquean: si el buffer de un
// suscriptor lento se llena, el evento se descarta para ese suscriptor.
type Feed struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
	buffer int
}

// New crea el feed. buffer es el tamaño del canal por suscriptor.
func New(buffer int) *Feed {
	if buffer <= 0 {
		buffer = 16
	}
	return &Feed{subs: make(map[int]*subscriber), buffer: buffer}
}

// Subscribe registra un suscriptor para las colecciones dadas del dueño
// (ninguna = todas). Devuelve el canal de eventos y la función para
// desuscribirse; tras llamarla el canal se cierra.
func (f *Feed) Subscribe(ownerID string, collections ...string) (<-chan Event, func()) {
	sub := &subscriber{
		ownerID:     ownerID,
		collections: make(map[string]struct{}, len(collections)),
		ch:          make(chan Event, f.buffer),
	}
	for _, c := range collections {
		sub.collections[c] = struct{}{}
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub
	f.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, unsubscribe
}

// Publish entrega el evento a los suscriptores del dueño interesados en la
// colección. Nunca bloquea.
func (f *Feed) Publish(ownerID, collection, action string) {
	ev := Event{OwnerID: ownerID, Collection: collection, Action: action, At: time.Now()}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, sub := range f.subs {
		if sub.ownerID != ownerID {
			continue
		}
		if len(sub.collections) > 0 {
			if _, ok := sub.collections[collection]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- ev:
		default:
			// suscriptor lento: se descarta el evento
		}
	}
}
