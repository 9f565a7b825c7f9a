/*
Package redisstore provides a tree.Store backed by a redis DB where every
tree is kept as a JSON document under a prefixed key.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree/json"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec json.NodeEncodeDecoder
}

//New builds a tree.Store backed by a redis DB
func New(rc *redis.Client, prefix string, nencdec json.NodeEncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) Create(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := rs.encode(ctx, t)
	if err != nil {
		return "", fmt.Errorf("creating tree: %w", err)
	}
	var ok bool
	var id string
	for !ok {
		id = uuid.New().String()
		ok, err = rs.rc.SetNX(rs.keyFor(id), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("creating tree in redis: %w", err)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return id, nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", id, err)
	}
	t, err := json.ReadJSONTree(ctx, rs.nencdec, bytes.NewBufferString(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding: %w", id, err)
	}
	return t, nil
}

func (rs *redisStore) Store(ctx context.Context, id string, t *tree.Tree) error {
	redisID := rs.keyFor(id)
	data, err := rs.encode(ctx, t)
	if err != nil {
		return fmt.Errorf("storing tree %q: %w", redisID, err)
	}
	ok, err := rs.rc.SetXX(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %w", redisID, err)
	}
	if !ok {
		return fmt.Errorf("storing tree %q: %w", redisID, tree.ErrTreeNotFound)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	redisID := rs.keyFor(id)
	n, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %w", redisID, err)
	}
	if n == 0 {
		return fmt.Errorf("deleting tree %q: %w", redisID, tree.ErrTreeNotFound)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) encode(ctx context.Context, t *tree.Tree) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := json.WriteJSONTree(ctx, t, rs.nencdec, buf)
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %w", err)
	}
	return buf.Bytes(), nil
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
