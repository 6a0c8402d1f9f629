package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

var Validate = validator.New()

const (
	ProfileTable   = "profiles"
	EventsTable    = "events"
	AttendeesTable = "event_attendees"
)

// SupabaseRepo is the single store collaborator. Row-level queries go through
// the supabase client; counter arithmetic goes through a raw postgrest client
// because the stored-procedure call surface is not reachable behind the
// supabase wrapper.
type SupabaseRepo struct {
	supabaseClient *supabase.Client
	rest           *postgrest.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	rest := postgrest.NewClient(url+"/rest/v1", "", map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	})

	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		rest:           rest,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client carrying the user's access
// token so row-level security applies to the call.
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

func (su *SupabaseRepo) client(accessToken string) (*supabase.Client, error) {
	if accessToken == "" {
		return su.supabaseClient, nil
	}
	return su.GetAuthenticatedClient(accessToken)
}
