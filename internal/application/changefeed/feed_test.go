package changefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "canal cerrado antes de tiempo")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timeout esperando evento")
		return Event{}
	}
}

func TestFeed_EntregaPorDuenoYColeccion(t *testing.T) {
	feed := New(4)

	inv, unsubInv := feed.Subscribe("owner-a", "inventory")
	defer unsubInv()
	todo, unsubTodo := feed.Subscribe("owner-a")
	defer unsubTodo()
	otro, unsubOtro := feed.Subscribe("owner-b")
	defer unsubOtro()

	feed.Publish("owner-a", "inventory", "add")
	feed.Publish("owner-a", "sales", "sale")

	ev := recv(t, inv)
	assert.Equal(t, "inventory", ev.Collection)
	assert.Equal(t, "add", ev.Action)

	// Sin filtro de colecciones recibe ambos
	assert.Equal(t, "inventory", recv(t, todo).Collection)
	assert.Equal(t, "sales", recv(t, todo).Collection)

	// El suscriptor filtrado no recibe la colección sales
	select {
	case ev := <-inv:
		t.Fatalf("evento inesperado: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	// Otro dueño no ve nada
	select {
	case ev := <-otro:
		t.Fatalf("evento de otro dueño: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeed_UnsubscribeCierraElCanal(t *testing.T) {
	feed := New(4)
	ch, unsubscribe := feed.Subscribe("owner-a")

	unsubscribe()
	// idempotente
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	// Publicar después de desuscribir no entra en pánico
	feed.Publish("owner-a", "inventory", "add")
}

func TestFeed_SuscriptorLentoNoBloquea(t *testing.T) {
	feed := New(1)
	ch, unsubscribe := feed.Subscribe("owner-a")
	defer unsubscribe()

	// Lleno el buffer y sigo publicando: Publish no debe bloquear
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			feed.Publish("owner-a", "inventory", "add")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueó con un suscriptor lento")
	}

	// El primer evento sigue disponible; el resto se descartó
	assert.Equal(t, "inventory", recv(t, ch).Collection)
}
