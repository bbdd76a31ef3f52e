package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/kelseyhightower/envconfig"
	"github.com/weberc2/sfs/pkg/snapshot"
	"github.com/weberc2/sfs/pkg/types"
	"gopkg.in/yaml.v2"
)

const (
	envVarPrefix = "SFS"
	appName      = "sfs"
)

const (
	StoreDir      = "dir"
	StoreS3       = "s3"
	StorePostgres = "pg"
)

type Config struct {
	Geometry    types.Geometry    `yaml:"geometry"`
	Device      string            `envconfig:"SFS_DEVICE"       yaml:"device"`
	Store       string            `envconfig:"SFS_STORE"        yaml:"store"`
	Snapshot    string            `envconfig:"SFS_SNAPSHOT"     yaml:"snapshot"`
	Gzip        bool              `envconfig:"SFS_GZIP"         yaml:"gzip"`
	SnapshotDir string            `envconfig:"SFS_SNAPSHOT_DIR" yaml:"snapshotDir"`
	Region      string            `envconfig:"SFS_S3_REGION"    yaml:"region"`
	Bucket      string            `envconfig:"SFS_S3_BUCKET"    yaml:"bucket"`
	Prefix      string            `envconfig:"SFS_S3_PREFIX"    yaml:"prefix"`
	Postgres    snapshot.PGConfig `yaml:"postgres"`
}

// DefaultConfig keeps snapshots of a default-geometry volume in the user's
// home directory.
func DefaultConfig() Config {
	return Config{
		Geometry:    types.DefaultGeometry,
		Store:       StoreDir,
		Snapshot:    appName,
		SnapshotDir: filepath.Join(os.Getenv("HOME"), ".local", "share", appName),
		Postgres:    snapshot.DefaultPGConfig,
	}
}

func LoadConfig() (*Config, error) {
	configFile := os.Getenv(envVarPrefix + "_CONFIG_FILE")
	if configFile == "" {
		configFile = filepath.Join(
			os.Getenv("HOME"),
			".config",
			appName+".yaml",
		)
	}

	c := DefaultConfig()
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling config file: %w", err)
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	// a device is mounted in place, so no store settings are needed
	if c.Device != "" {
		return nil
	}

	if y, e := func() (string, string) {
		if c.Snapshot == "" {
			return "snapshot", "SFS_SNAPSHOT"
		}
		switch c.Store {
		case StoreDir:
			if c.SnapshotDir == "" {
				return "snapshotDir", "SFS_SNAPSHOT_DIR"
			}
		case StoreS3:
			if c.Bucket == "" {
				return "bucket", "SFS_S3_BUCKET"
			}
		case StorePostgres:
			// nested postgres settings are read without the `SFS_` prefix
			if c.Postgres.Table == "" {
				return "postgres.table", "PG_TABLE"
			}
		}
		return "", ""
	}(); y != "" {
		return fmt.Errorf("missing required configuration: %s / %s", y, e)
	}

	switch c.Store {
	case StoreDir, StoreS3, StorePostgres:
	default:
		return fmt.Errorf(
			"invalid configuration: store / %s_STORE: wanted one of "+
				"`%s`, `%s`, or `%s`; found `%s`",
			envVarPrefix,
			StoreDir,
			StoreS3,
			StorePostgres,
			c.Store,
		)
	}
	return nil
}

// OpenStore connects to the configured snapshot store. The returned cleanup
// function releases any connections it holds.
func (c *Config) OpenStore() (snapshot.Store, func() error, error) {
	var store snapshot.Store
	cleanup := func() error { return nil }

	switch c.Store {
	case StoreDir:
		store = &snapshot.DirStore{Dir: c.SnapshotDir}
	case StoreS3:
		config := aws.NewConfig()
		if c.Region != "" {
			config = config.WithRegion(c.Region)
		}
		sess, err := session.NewSession(config)
		if err != nil {
			return nil, nil, fmt.Errorf("creating AWS session: %w", err)
		}
		store = &snapshot.S3Store{
			Client: s3.New(sess),
			Bucket: c.Bucket,
			Prefix: c.Prefix,
		}
	case StorePostgres:
		pgStore, err := snapshot.OpenPG(&c.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := pgStore.EnsureTable(); err != nil {
			pgStore.Close()
			return nil, nil, err
		}
		store, cleanup = pgStore, pgStore.Close
	default:
		return nil, nil, fmt.Errorf("unknown snapshot store `%s`", c.Store)
	}

	if c.Gzip {
		store = &snapshot.GzipStore{Store: store}
	}
	return store, cleanup, nil
}
