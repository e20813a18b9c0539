package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"

	"github.com/vdurham2244/lavobot-game/internal/engine"
	"github.com/vdurham2244/lavobot-game/pkg/api"
	"github.com/vdurham2244/lavobot-game/pkg/logger"
	"github.com/vdurham2244/lavobot-game/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и игровым Service
type Client struct {
	Game      *engine.Service
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string

	// writerDone закрывается при выходе writePump: пересылка из Hub
	// не должна вечно висеть на записи в Send мертвого писателя.
	writerDone chan struct{}
}

func NewClient(game *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Game:       game,
		Conn:       conn,
		Send:       make(chan api.ServerResponse, 256),
		writerDone: make(chan struct{}),
	}
}

// forwardUpdates пересылает кадры из Hub в канал writePump.
// Завершается при закрытии ленты обновлений ИЛИ при смерти писателя.
func forwardUpdates(updates <-chan api.ServerResponse, send chan<- api.ServerResponse, writerDone <-chan struct{}) {
	defer close(send)
	for msg := range updates {
		select {
		case send <- msg:
		case <-writerDone:
			return
		}
	}
}

// parseCommand проверяет сырое сообщение клиента.
// Сначала JSON-схема на сырых байтах, потом типизированный Unmarshal.
func parseCommand(raw []byte) (api.ClientCommand, error) {
	var cmd api.ClientCommand
	if err := api.ValidateCommandJSON(raw); err != nil {
		return cmd, err
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, err
	}
	return cmd, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.SessionID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		// Сессия одиночная: ушел клиент - гасим инстанс и пишем реплей
		if c.SessionID != "" {
			c.Game.StopSession(c.SessionID)
			logger.Log.WithField("session", c.SessionID).Info("Client disconnected")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE
	_, rawHello, err := c.Conn.ReadMessage()
	if err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}
	helloCmd, err := parseCommand(rawHello)
	if err != nil {
		logger.Log.WithError(err).Warn("Handshake rejected")
		return
	}

	c.SessionID = helloCmd.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateSessionID()
	}

	// 2. СОЗДАНИЕ СЕССИИ
	if _, err := c.Game.StartSession(c.SessionID); err != nil {
		logger.Log.WithError(err).Warn("Failed to start session")
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"session": c.SessionID,
		"remote":  c.Conn.RemoteAddr().String(),
	}).Info("Client logged in")

	// 3. ПОДПИСКА НА ОБНОВЛЕНИЯ
	gameUpdates := c.Game.Hub.Register(c.SessionID)

	// Пересылка обновлений из Hub в writePump
	go forwardUpdates(gameUpdates, c.Send, c.writerDone)

	// Отправляем INIT (триггер первой отрисовки)
	c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.SessionID})

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		cmd, err := parseCommand(raw)
		if err != nil {
			// Невалидное сообщение - не повод рвать соединение,
			// следующий кадр ввода все перезапишет
			logger.Log.WithError(err).Debug("Dropping invalid client message")
			continue
		}
		cmd.Token = c.SessionID
		c.Game.ProcessCommand(cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.writerDone)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
