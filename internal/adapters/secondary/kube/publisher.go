package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"co2-predictor-service/internal/config"
	"co2-predictor-service/internal/core/codec"
	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

var configMapGVR = schema.GroupVersionResource{
	Group:    "",
	Version:  "v1",
	Resource: "configmaps",
}

const (
	artifactKey      = "artifact.json"
	labelArtifactID  = "co2-predictor/artifact-id"
	labelManagedBy   = "app.kubernetes.io/managed-by"
	managedByService = "co2-predictor-service"
)

// Publisher mirrors the latest artifact into a ConfigMap so serving replicas
// can mount it as their model file.
type Publisher struct {
	client    dynamic.Interface
	namespace string
	name      string
}

// NewPublisher builds a dynamic client from cfg. Callers should skip it when
// cfg.Enabled is false.
func NewPublisher(cfg *config.KubernetesConfig) (*Publisher, error) {
	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return NewPublisherWithClient(client, cfg.Namespace, cfg.ConfigMapName), nil
}

func NewPublisherWithClient(client dynamic.Interface, namespace, name string) *Publisher {
	if namespace == "" {
		namespace = "default"
	}
	if name == "" {
		name = "co2-model-artifact"
	}
	return &Publisher{client: client, namespace: namespace, name: name}
}

// Publish creates or replaces the ConfigMap contents with artifact.
func (p *Publisher) Publish(ctx context.Context, artifact *domain.ModelArtifact) error {
	data, err := codec.Marshal(codec.FormatJSON, artifact)
	if err != nil {
		return err
	}

	resource := p.client.Resource(configMapGVR).Namespace(p.namespace)

	existing, err := resource.Get(ctx, p.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = resource.Create(ctx, p.buildConfigMap(artifact, data), metav1.CreateOptions{})
		if err != nil {
			return fmt.Errorf("create configmap %s/%s: %w", p.namespace, p.name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get configmap %s/%s: %w", p.namespace, p.name, err)
	}

	if err := unstructured.SetNestedStringMap(existing.Object, map[string]string{artifactKey: string(data)}, "data"); err != nil {
		return fmt.Errorf("set configmap data: %w", err)
	}
	labels := existing.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}
	labels[labelArtifactID] = artifact.ID.String()
	labels[labelManagedBy] = managedByService
	existing.SetLabels(labels)

	if _, err := resource.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update configmap %s/%s: %w", p.namespace, p.name, err)
	}
	return nil
}

// Load reads the published artifact back.
func (p *Publisher) Load(ctx context.Context) (*domain.ModelArtifact, error) {
	obj, err := p.client.Resource(configMapGVR).Namespace(p.namespace).Get(ctx, p.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, domain.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get configmap %s/%s: %w", p.namespace, p.name, err)
	}

	raw, found, err := unstructured.NestedString(obj.Object, "data", artifactKey)
	if err != nil || !found {
		return nil, domain.ErrArtifactNotFound
	}
	return codec.Unmarshal(codec.FormatJSON, []byte(raw))
}

func (p *Publisher) buildConfigMap(artifact *domain.ModelArtifact, data []byte) *unstructured.Unstructured {
	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "ConfigMap",
			"metadata": map[string]interface{}{
				"name":      p.name,
				"namespace": p.namespace,
				"labels": map[string]interface{}{
					labelArtifactID: artifact.ID.String(),
					labelManagedBy:  managedByService,
				},
			},
			"data": map[string]interface{}{
				artifactKey: string(data),
			},
		},
	}
}

var _ output.ArtifactPublisher = (*Publisher)(nil)
