// pkg/config/loader.go
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Loader 配置加载器
// 支持 yaml/json 配置文件，环境变量前缀 SM3FOLD，
// 例如 SM3FOLD_ENGINE_WORKERS 覆盖 engine.workers
type Loader struct {
	viper *viper.Viper
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("SM3FOLD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return &Loader{viper: v}
}

// LoadFile 加载配置文件
// configType: "yaml" 或 "json"
func (l *Loader) LoadFile(configPath string, configType string) error {
	l.viper.SetConfigFile(configPath)
	l.viper.SetConfigType(configType)

	if err := l.viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "config: failed to read config file")
	}
	return nil
}

// SetDefault 设置默认值
func (l *Loader) SetDefault(key string, value interface{}) {
	l.viper.SetDefault(key, value)
}

// Unmarshal 解析整个配置到结构体
func (l *Loader) Unmarshal(target interface{}) error {
	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Wrap(err, "config: failed to unmarshal config")
	}
	return nil
}

// UnmarshalKey 解析配置中的某个 key 到结构体
func (l *Loader) UnmarshalKey(key string, target interface{}) error {
	if err := l.viper.UnmarshalKey(key, target); err != nil {
		return errors.Wrapf(err, "config: failed to unmarshal key %s", key)
	}
	return nil
}
