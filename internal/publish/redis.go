// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package publish

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes result documents as string values under
// key-per-run keys in Redis.
type RedisPublisher struct {
	Client *redis.Client
}

func NewRedisPublisher(addr string) *RedisPublisher {
	return &RedisPublisher{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (p *RedisPublisher) Publish(ctx context.Context, key string, doc []byte) error {
	if err := p.Client.Set(ctx, key, doc, 0).Err(); err != nil {
		return fmt.Errorf("publish: redis SET %s: %w", key, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.Client.Close()
}
