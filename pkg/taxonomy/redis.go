package taxonomy

import (
	"context"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix prefixes the Redis set of each group: "taxonomy:borough".
const DefaultKeyPrefix = "taxonomy:"

// RedisSource reads each group from a Redis set shared by every instance.
type RedisSource struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisSource(client redis.UniversalClient, prefix string) *RedisSource {
	if client == nil {
		panic("taxonomy: redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisSource{client: client, prefix: prefix}
}

func (s *RedisSource) key(group Group) string {
	return s.prefix + string(group)
}

// Codes returns the members of the group's set, sorted.
func (s *RedisSource) Codes(ctx context.Context, group Group) ([]string, error) {
	codes, err := s.client.SMembers(ctx, s.key(group)).Result()
	if err != nil {
		return nil, errors.Join(ErrSource, err)
	}
	slices.Sort(codes)
	return codes, nil
}

// Seed replaces the codes of every group of src in one transaction.
func (s *RedisSource) Seed(ctx context.Context, src *MemorySource) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, group := range src.Groups() {
			codes, err := src.Codes(ctx, group)
			if err != nil {
				return err
			}
			pipe.Del(ctx, s.key(group))
			if len(codes) == 0 {
				continue
			}
			members := make([]any, len(codes))
			for i, c := range codes {
				members[i] = c
			}
			pipe.SAdd(ctx, s.key(group), members...)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrSource, err)
	}
	return nil
}
