package tools

import "github.com/fyrsmithlabs/clusterpilot/internal/schema"

// Builtin returns the built-in operation catalog in presentation order.
// The executor side of each operation lives outside this process; the
// catalog only pins names, argument contracts, and rendering defaults.
func Builtin() []Descriptor {
	return []Descriptor{
		{
			Name:        "get_pods",
			Description: "List pods in a namespace with status and restart counts",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace to list pods from"},
				{Name: "selector", Kind: schema.KindString,
					Description: "Label selector, e.g. app=web"},
				{Name: "all_namespaces", Kind: schema.KindBool,
					Description: "List pods across every namespace"},
			}},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"show all pods in namespace billing",
				"list pods with label app=web",
			},
		},
		{
			Name:        "describe_pod",
			Description: "Show detailed state for a single pod",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "name", Kind: schema.KindString, Required: true,
					Description: "Pod name"},
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace the pod lives in"},
			}},
			Result:           ResultDetail,
			PresentationHint: HintDetail,
			Examples: []string{
				"describe pod payment-api-7d4f in namespace prod",
				"why is checkout-worker pending",
			},
		},
		{
			Name:        "get_pod_logs",
			Description: "Fetch recent log lines from a pod",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "name", Kind: schema.KindString, Required: true,
					Description: "Pod name"},
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace the pod lives in"},
				{Name: "container", Kind: schema.KindString,
					Description: "Container name for multi-container pods"},
				{Name: "tail", Kind: schema.KindNumber, Default: float64(100),
					Description: "Number of trailing lines to return"},
				{Name: "previous", Kind: schema.KindBool,
					Description: "Read logs from the previous container instance"},
			}},
			Result:           ResultLogs,
			PresentationHint: HintLogs,
			Examples: []string{
				"show the last 50 log lines of payment-api",
				"logs from the crashed container of checkout-worker",
			},
		},
		{
			Name:        "get_deployments",
			Description: "List deployments with replica readiness",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace to list deployments from"},
				{Name: "all_namespaces", Kind: schema.KindBool,
					Description: "List deployments across every namespace"},
			}},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"what deployments are running in staging",
			},
		},
		{
			Name:        "scale_deployment",
			Description: "Change the replica count of a deployment",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "name", Kind: schema.KindString, Required: true,
					Description: "Deployment name"},
				{Name: "replicas", Kind: schema.KindNumber, Required: true,
					Description: "Desired replica count"},
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace the deployment lives in"},
			}},
			Result:           ResultAck,
			PresentationHint: HintText,
			Examples: []string{
				"scale payment-api to 5 replicas",
				"bump checkout to three instances in prod",
			},
		},
		{
			Name:        "restart_deployment",
			Description: "Trigger a rolling restart of a deployment",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "name", Kind: schema.KindString, Required: true,
					Description: "Deployment name"},
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace the deployment lives in"},
			}},
			Result:           ResultAck,
			PresentationHint: HintText,
			Examples: []string{
				"restart the payment-api deployment",
			},
		},
		{
			Name:        "get_services",
			Description: "List services with cluster IPs and ports",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace to list services from"},
				{Name: "all_namespaces", Kind: schema.KindBool,
					Description: "List services across every namespace"},
			}},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"show services in namespace billing",
			},
		},
		{
			Name:        "get_events",
			Description: "List recent cluster events, most recent first",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace to read events from"},
				{Name: "type", Kind: schema.KindEnum,
					Enum:        []string{"Normal", "Warning"},
					Description: "Restrict to one event type"},
			}},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"any warning events in prod",
				"what happened recently in namespace billing",
			},
		},
		{
			Name:             "get_nodes",
			Description:      "List cluster nodes with readiness and versions",
			Arguments:        schema.Shape{},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"show cluster nodes",
				"is any node not ready",
			},
		},
		{
			Name:             "get_namespaces",
			Description:      "List namespaces",
			Arguments:        schema.Shape{},
			Result:           ResultList,
			PresentationHint: HintTable,
			Examples: []string{
				"what namespaces exist",
			},
		},
		{
			Name:        "top_pods",
			Description: "Show CPU and memory usage per pod",
			Arguments: schema.Shape{Fields: []schema.Field{
				{Name: "namespace", Kind: schema.KindString, Default: "default",
					Description: "Namespace to read usage from"},
				{Name: "sort_by", Kind: schema.KindEnum,
					Enum:        []string{"cpu", "memory"},
					Description: "Usage column to sort by"},
			}},
			Result:           ResultMetrics,
			PresentationHint: HintTable,
			Examples: []string{
				"which pods use the most memory in prod",
			},
		},
	}
}
