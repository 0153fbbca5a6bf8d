package ws

import (
	"context"
	"sync"
	"time"

	"dealflow_backend/internal/logger"
)

// Event - то, что уходит клиенту по сокету
type Event struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	SentAt time.Time   `json:"sent_at"`
}

// WebSocketManager хранит подключения по userID (несколько вкладок = несколько клиентов)
// и реализует доставку событий из сервисов.
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов до отмены ctx
func (manager *WebSocketManager) Run(ctx context.Context) {
	defer manager.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-manager.register:
			manager.mu.Lock()
			if manager.clients[client.UserID] == nil {
				manager.clients[client.UserID] = make(map[*Client]struct{})
			}
			manager.clients[client.UserID][client] = struct{}{}
			total := manager.countLocked()
			manager.mu.Unlock()
			logger.Debug("WebSocket client registered", "user_id", client.UserID, "total", total)

		case client := <-manager.unregister:
			manager.mu.Lock()
			if set, ok := manager.clients[client.UserID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.Send)
				}
				if len(set) == 0 {
					delete(manager.clients, client.UserID)
				}
			}
			total := manager.countLocked()
			manager.mu.Unlock()
			logger.Debug("WebSocket client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

func (manager *WebSocketManager) Register(client *Client) {
	select {
	case manager.register <- client:
	case <-manager.done:
		close(client.Send)
	}
}

func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// SendToUser доставляет событие всем подключениям пользователя. Не блокирует:
// клиент с переполненным буфером отключается.
func (manager *WebSocketManager) SendToUser(userID string, eventType string, payload interface{}) {
	event := Event{Type: eventType, Data: payload, SentAt: time.Now().UTC()}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.clients[userID] {
		select {
		case client.Send <- event:
		default:
			logger.Warn("WebSocket send buffer full, disconnecting", "user_id", userID)
			go manager.Unregister(client)
		}
	}
}

// GetClientCount возвращает количество подключений
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.countLocked()
}

// IsUserConnected проверяет, есть ли у пользователя открытое соединение
func (manager *WebSocketManager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}

func (manager *WebSocketManager) countLocked() int {
	n := 0
	for _, set := range manager.clients {
		n += len(set)
	}
	return n
}

func (manager *WebSocketManager) shutdown() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for userID, set := range manager.clients {
		for client := range set {
			close(client.Send)
		}
		delete(manager.clients, userID)
	}
	close(manager.done)
}
