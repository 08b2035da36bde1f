package database

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultMongoDatabase 在連線字串未指定資料庫時使用
const DefaultMongoDatabase = "test"

var (
	newMongoClient = mongo.Connect
	pingMongo      = func(ctx context.Context, c *mongo.Client) error { return c.Ping(ctx, readpref.Primary()) }
	disconnect     = func(ctx context.Context, c *mongo.Client) error { return c.Disconnect(ctx) }
)

// MongoConn 持有單一 MongoDB client 與其狀態
type MongoConn struct {
	client *mongo.Client
	db     *mongo.Database
	host   string
	name   string
	state  *stateTracker
}

// ConnectMongo 只嘗試連線一次，不重試；失敗時回傳 *ConnectError，由呼叫端決定是否結束程序。
// dbName 非空時覆寫連線字串中的資料庫名稱。
func ConnectMongo(ctx context.Context, uri, dbName string, log zerolog.Logger) (*MongoConn, error) {
	if err := ValidateURI(uri); err != nil {
		return nil, err
	}

	host, name := parseMongoURI(uri)
	if dbName != "" {
		name = dbName
	}
	log = log.With().Str("host", host).Str("database", name).Logger()

	state := newStateTracker(log)
	state.set(Connecting)
	log.Info().Msg("attempting to connect to MongoDB")

	opts := options.Client().ApplyURI(uri).SetServerMonitor(serverMonitor(state))
	client, err := newMongoClient(ctx, opts)
	if err != nil {
		state.set(Disconnected)
		return nil, &ConnectError{Kind: Classify(err), Err: err}
	}
	if err := pingMongo(ctx, client); err != nil {
		_ = disconnect(context.Background(), client)
		state.set(Disconnected)
		return nil, &ConnectError{Kind: Classify(err), Err: err}
	}
	state.connected()

	log.Info().Str("state", state.get().String()).Msg("MongoDB connected successfully")
	return &MongoConn{
		client: client,
		db:     client.Database(name),
		host:   host,
		name:   name,
		state:  state,
	}, nil
}

// serverMonitor only observes heartbeats; it never reconnects.
func serverMonitor(state *stateTracker) *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(*event.ServerHeartbeatSucceededEvent) {
			state.connected()
		},
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			state.failed(e.Failure)
		},
	}
}

// parseMongoURI extracts the first host and the database name without
// resolving SRV records.
func parseMongoURI(uri string) (host, name string) {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	hosts, path, _ := strings.Cut(rest, "/")
	if i := strings.LastIndex(hosts, "@"); i >= 0 {
		hosts = hosts[i+1:]
	}
	host, _, _ = strings.Cut(hosts, ",")
	name = path
	if name == "" {
		name = DefaultMongoDatabase
	}
	return host, name
}

var _ Conn = (*MongoConn)(nil)

func (c *MongoConn) ReadyState() ReadyState { return c.state.get() }
func (c *MongoConn) Host() string           { return c.host }
func (c *MongoConn) Name() string           { return c.name }

func (c *MongoConn) Ping(ctx context.Context) error {
	return pingMongo(ctx, c.client)
}

// Close 關閉連線；重複呼叫不會有作用
func (c *MongoConn) Close(ctx context.Context) error {
	if !c.state.beginClose() {
		return nil
	}
	err := disconnect(ctx, c.client)
	c.state.endClose()
	return err
}

// Collection 回傳目前資料庫中的 collection
func (c *MongoConn) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// CollectionNames 列出目前資料庫的所有 collection
func (c *MongoConn) CollectionNames(ctx context.Context) ([]string, error) {
	return c.db.ListCollectionNames(ctx, bson.D{})
}
