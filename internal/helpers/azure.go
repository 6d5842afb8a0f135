package helpers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/organization"

	"github.com/clampline/tenantctl/internal/config"
)

// Session is the explicit authenticated context threaded into every
// remote operation. One session is built per run; there is no ambient
// process-wide credential.
type Session struct {
	Credential azcore.TokenCredential
	TenantID   string
}

// NewSession builds a session from service principal credentials when
// they are complete, otherwise from the default Azure credential chain
// (CLI login, managed identity, environment).
func NewSession(creds config.Credentials) (*Session, error) {
	if creds.Complete() {
		cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to authenticate service principal: %w", err)
		}
		return &Session{Credential: cred, TenantID: creds.TenantID}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}
	return &Session{Credential: cred, TenantID: creds.TenantID}, nil
}

// SubscriptionSummary is one accessible subscription, for listings and
// interactive selection.
type SubscriptionSummary struct {
	ID    string
	Name  string
	State string
}

// ListSubscriptions returns all subscriptions accessible to the session.
func ListSubscriptions(ctx context.Context, session *Session) ([]SubscriptionSummary, error) {
	subsClient, err := armsubscriptions.NewClient(session.Credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var subs []SubscriptionSummary
	pager := subsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}

		for _, sub := range page.Value {
			if sub.SubscriptionID == nil {
				continue
			}
			s := SubscriptionSummary{ID: *sub.SubscriptionID, Name: "Unknown", State: "Unknown"}
			if sub.DisplayName != nil {
				s.Name = *sub.DisplayName
			}
			if sub.State != nil {
				s.State = string(*sub.State)
			}
			subs = append(subs, s)
		}
	}

	if len(subs) == 0 {
		return nil, fmt.Errorf("no accessible subscriptions found")
	}
	return subs, nil
}

// GetSubscriptionDetails gets details about an Azure subscription
func GetSubscriptionDetails(ctx context.Context, session *Session, subscriptionID string) (*armsubscriptions.ClientGetResponse, error) {
	subsClient, err := armsubscriptions.NewClient(session.Credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	sub, err := subsClient.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription details: %w", err)
	}

	return &sub, nil
}

// GetTenantDetails gets the tenant display name and id from Graph.
func GetTenantDetails(ctx context.Context, session *Session) (string, string, error) {
	graphClient, err := msgraphsdk.NewGraphServiceClientWithCredentials(session.Credential, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create Graph client: %w", err)
	}

	org, err := graphClient.Organization().Get(ctx, &organization.OrganizationRequestBuilderGetRequestConfiguration{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get organization details: %w", err)
	}

	tenantName := "Unknown"
	tenantID := "Unknown"

	if orgValue := org.GetValue(); len(orgValue) > 0 {
		if displayName := orgValue[0].GetDisplayName(); displayName != nil {
			tenantName = *displayName
		}
		if id := orgValue[0].GetId(); id != nil {
			tenantID = *id
		}
	}

	return tenantName, tenantID, nil
}

// ResourceCount holds the count for each Azure resource type
type ResourceCount struct {
	ResourceType string
	Count        int
}

// CountResources counts Azure resources by type in one subscription.
func CountResources(ctx context.Context, session *Session, subscriptionID string) ([]*ResourceCount, error) {
	client, err := armresources.NewClient(subscriptionID, session.Credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource client: %w", err)
	}

	var resourcesCount []*ResourceCount
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get next page of resources: %w", err)
		}

		for _, resource := range page.Value {
			if resource.Type != nil {
				resourcesCount = addResourceCount(resourcesCount, *resource.Type)
			}
		}
	}

	return resourcesCount, nil
}

func addResourceCount(resourcesCount []*ResourceCount, resourceType string) []*ResourceCount {
	for _, rc := range resourcesCount {
		if rc.ResourceType == resourceType {
			rc.Count++
			return resourcesCount
		}
	}

	return append(resourcesCount, &ResourceCount{
		ResourceType: resourceType,
		Count:        1,
	})
}

// TenantSummary holds tenant, subscription and resource information
// for the azure summary module.
type TenantSummary struct {
	TenantName       string
	TenantID         string
	SubscriptionID   string
	SubscriptionName string
	State            string
	Tags             map[string]*string
	Resources        []*ResourceCount
}

// GetTenantSummary collects all summary details for one subscription.
func GetTenantSummary(ctx context.Context, session *Session, subscriptionID string) (*TenantSummary, error) {
	sub, err := GetSubscriptionDetails(ctx, session, subscriptionID)
	if err != nil {
		return nil, err
	}

	tenantName, tenantID, err := GetTenantDetails(ctx, session)
	if err != nil {
		return nil, err
	}

	resources, err := CountResources(ctx, session, subscriptionID)
	if err != nil {
		return nil, err
	}

	stateStr := "Unknown"
	if sub.State != nil {
		stateStr = string(*sub.State)
	}

	return &TenantSummary{
		TenantName:       tenantName,
		TenantID:         tenantID,
		SubscriptionID:   *sub.SubscriptionID,
		SubscriptionName: *sub.DisplayName,
		State:            stateStr,
		Tags:             sub.Tags,
		Resources:        resources,
	}, nil
}
