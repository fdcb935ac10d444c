package config

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsOverlay holds values fetched from a secrets store that replace
// whatever the config file or environment provided.
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	StatsAPIKey      string `json:"stats_api_key"`
}

// LoadSecretsFromAWS fetches the named secret from AWS Secrets Manager
// and overlays its values onto cfg. The secret value is expected to be a
// JSON document matching SecretsOverlay.
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region, secretName string) error {
	if secretName == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretName,
	})
	if err != nil {
		return fmt.Errorf("fetching secret %s: %w", secretName, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", secretName)
	}

	var overlay SecretsOverlay
	if err := json.Unmarshal([]byte(*out.SecretString), &overlay); err != nil {
		return fmt.Errorf("parsing secret %s: %w", secretName, err)
	}

	overlaySecrets(cfg, overlay)
	return nil
}

func overlaySecrets(cfg *Config, overlay SecretsOverlay) {
	if overlay.DatabasePassword != "" {
		cfg.Database.Password = overlay.DatabasePassword
	}
	if overlay.StatsAPIKey != "" {
		cfg.Stats.RemoteAPIKey = overlay.StatsAPIKey
	}
}
