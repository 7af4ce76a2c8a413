// Package sportsdb adapts the TheSportsDB-style REST API to the common
// provider envelope. The upstream has static per-operation paths
// (/lookupleague.php?id=, /searchteams.php?t=, ...) and an inconsistent
// envelope: each endpoint wraps its payload in a differently-named
// collection which is null, not an empty list, when nothing matched.
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/cache"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/resolve"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

const (
	// ProviderName is the routing-policy key for this adapter.
	ProviderName = "sportsdb"

	// DefaultBaseURL is the public API root; the key becomes a path
	// segment ("3" is the free tier).
	DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

	listCacheTTL = time.Hour
)

// wellKnownLeagues is the hand-curated alias table used when the
// league-list search yields nothing for a name.
var wellKnownLeagues = map[string]string{
	"premier league":   "4328",
	"la liga":          "4335",
	"serie a":          "4332",
	"bundesliga":       "4331",
	"ligue 1":          "4334",
	"champions league": "4480",
	"eredivisie":       "4337",
}

// Client is the TheSportsDB adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	leagues   *resolve.Resolver
	teams     *resolve.Resolver
	listCache *cache.TTLCache
}

// New creates the adapter. baseURL and apiKey fall back to the public
// defaults when empty.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = "3"
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		listCache:  cache.NewTTLCache(),
	}
	c.leagues = resolve.New("league", c.searchLeagues, wellKnownLeagues)
	c.teams = resolve.New("team", c.searchTeams, nil)
	return c
}

// Name returns the provider key used in routing policy and traces.
func (c *Client) Name() string {
	return ProviderName
}

// Call executes one intent against TheSportsDB.
func (c *Client) Call(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	switch intent {
	case models.IntentEventsList:
		return c.eventsForDay(ctx, intent, args)
	case models.IntentEventGet:
		return c.eventGet(ctx, intent, args)
	case models.IntentTeamsList:
		return c.teamsList(ctx, intent, args)
	case models.IntentTeamGet:
		return c.teamGet(ctx, intent, args)
	case models.IntentPlayersList:
		return c.playersList(ctx, intent, args)
	case models.IntentLeagueTable:
		return c.leagueTable(ctx, intent, args)
	case models.IntentLeaguesList:
		return c.leaguesList(ctx, intent)
	case models.IntentCountriesList:
		return c.countriesList(ctx, intent)
	case models.IntentVideoHighlights:
		return c.videoHighlights(ctx, intent, args)
	default:
		return models.Failure(intent, models.ErrUpstream,
			fmt.Sprintf("sportsdb does not support intent %s", intent), nil)
	}
}

func (c *Client) eventsForDay(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	date, ok := providers.StringArg(args, "date")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "date is required", nil)
	}

	query := url.Values{"d": {date}}
	resp := models.Success(intent, nil)

	if leagueID, ok := providers.StringArg(args, "leagueId"); ok {
		query.Set("l", leagueID)
	} else if leagueName, ok := providers.StringArg(args, "leagueName"); ok {
		leagueID, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", leagueID)
		query.Set("l", leagueID)
	} else {
		query.Set("s", "Soccer")
	}

	data, err := c.get(ctx, "eventsday.php", query)
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	resp.Data = data
	return resp
}

// eventGet looks up one event, issuing sequential sub-calls for each
// requested expansion. A failed expansion is omitted from the combined
// payload, never fatal.
func (c *Client) eventGet(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	eventID, ok := providers.StringArg(args, "eventId", "id")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "eventId is required", nil)
	}

	data, err := c.get(ctx, "lookupevent.php", url.Values{"id": {eventID}})
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}

	resp := models.Success(intent, data)

	expansions := map[string]string{
		"timeline": "lookuptimeline.php",
		"stats":    "lookupeventstats.php",
		"lineup":   "lookuplineup.php",
	}
	for _, part := range providers.StringsArg(args, "expand") {
		path, known := expansions[part]
		if !known {
			resp.AppendTrace("expand", map[string]interface{}{"part": part, "ok": false, "reason": "unknown expansion"})
			continue
		}
		extra, err := c.get(ctx, path, url.Values{"id": {eventID}})
		if err != nil {
			resp.AppendTrace("expand", map[string]interface{}{"part": part, "ok": false, "reason": err.Error()})
			continue
		}
		data[part] = extra
		resp.AppendTrace("expand", map[string]interface{}{"part": part, "ok": true})
	}
	return resp
}

func (c *Client) teamsList(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	leagueID, ok := providers.StringArg(args, "leagueId")
	if !ok {
		leagueName, named := providers.StringArg(args, "leagueName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "leagueId or leagueName is required", nil)
		}
		resolved, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", resolved)
		leagueID = resolved
	}

	data, err := c.get(ctx, "lookup_all_teams.php", url.Values{"id": {leagueID}})
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	resp.Data = data
	return resp
}

func (c *Client) teamGet(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	if teamID, ok := providers.StringArg(args, "teamId"); ok {
		data, err := c.get(ctx, "lookupteam.php", url.Values{"id": {teamID}})
		if err != nil {
			return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
		}
		return models.Success(intent, data)
	}

	teamName, ok := providers.StringArg(args, "teamName")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "teamId or teamName is required", nil)
	}
	data, err := c.get(ctx, "searchteams.php", url.Values{"t": {teamName}})
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	return models.Success(intent, data)
}

func (c *Client) playersList(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	teamID, ok := providers.StringArg(args, "teamId")
	if !ok {
		teamName, named := providers.StringArg(args, "teamName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "teamId or teamName is required", nil)
		}
		resolved, errInfo := c.teams.Resolve(ctx, teamName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("teamId", resolved)
		teamID = resolved
	}

	data, err := c.get(ctx, "lookup_all_players.php", url.Values{"id": {teamID}})
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	resp.Data = data
	return resp
}

func (c *Client) leagueTable(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	leagueID, ok := providers.StringArg(args, "leagueId")
	if !ok {
		leagueName, named := providers.StringArg(args, "leagueName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "leagueId or leagueName is required", nil)
		}
		resolved, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", resolved)
		leagueID = resolved
	}

	query := url.Values{"l": {leagueID}}
	if season, ok := providers.StringArg(args, "season"); ok {
		query.Set("s", season)
	}

	data, err := c.get(ctx, "lookuptable.php", query)
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	resp.Data = data
	return resp
}

func (c *Client) leaguesList(ctx context.Context, intent models.Intent) *models.Response {
	data, err := c.cachedList(ctx, "all_leagues.php")
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	return models.Success(intent, data)
}

func (c *Client) countriesList(ctx context.Context, intent models.Intent) *models.Response {
	data, err := c.cachedList(ctx, "all_countries.php")
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}
	return models.Success(intent, data)
}

// videoHighlights surfaces the highlight/video fields of an event
// lookup as a slim payload.
func (c *Client) videoHighlights(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	eventID, ok := providers.StringArg(args, "eventId", "id")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "eventId is required", nil)
	}

	data, err := c.get(ctx, "lookupevent.php", url.Values{"id": {eventID}})
	if err != nil {
		return models.Failure(intent, models.ErrUpstream, err.Error(), nil)
	}

	events, _ := data["events"].([]interface{})
	if len(events) == 0 {
		return models.Success(intent, map[string]interface{}{"highlights": nil})
	}
	event, _ := events[0].(map[string]interface{})

	highlight := map[string]interface{}{
		"event_id": eventID,
	}
	for key, alias := range map[string]string{
		"video": "strVideo",
		"thumb": "strThumb",
	} {
		if value, ok := event[alias]; ok && value != nil {
			highlight[key] = value
		}
	}
	return models.Success(intent, map[string]interface{}{"highlights": []interface{}{highlight}})
}

// searchLeagues backs the league resolver. TheSportsDB has no league
// search endpoint, so the full (cached) list is returned and the
// resolver does the matching.
func (c *Client) searchLeagues(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, err := c.cachedList(ctx, "all_leagues.php")
	if err != nil {
		return nil, err
	}

	leagues, _ := data["leagues"].([]interface{})
	candidates := make([]resolve.Candidate, 0, len(leagues))
	for _, raw := range leagues {
		league, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if sport, _ := league["strSport"].(string); sport != "" && sport != "Soccer" {
			continue
		}
		id, _ := league["idLeague"].(string)
		leagueName, _ := league["strLeague"].(string)
		if id == "" || leagueName == "" {
			continue
		}
		candidates = append(candidates, resolve.Candidate{ID: id, Name: leagueName})
	}
	return candidates, nil
}

// searchTeams backs the team resolver via the upstream's name search.
func (c *Client) searchTeams(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, err := c.get(ctx, "searchteams.php", url.Values{"t": {name}})
	if err != nil {
		return nil, err
	}

	teams, _ := data["teams"].([]interface{})
	candidates := make([]resolve.Candidate, 0, len(teams))
	for _, raw := range teams {
		team, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := team["idTeam"].(string)
		teamName, _ := team["strTeam"].(string)
		if id == "" || teamName == "" {
			continue
		}
		candidates = append(candidates, resolve.Candidate{ID: id, Name: teamName})
	}
	return candidates, nil
}

// cachedList fetches a rarely-changing list endpoint through the 1h
// cache.
func (c *Client) cachedList(ctx context.Context, path string) (map[string]interface{}, error) {
	if cached, fresh := c.listCache.Get(path); fresh {
		return cached.(map[string]interface{}), nil
	}
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	c.listCache.Put(path, data, listCacheTTL)
	return data, nil
}

// get performs one GET and decodes the JSON body. Non-2xx statuses and
// malformed JSON are errors; the caller maps them into the envelope.
func (c *Client) get(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiKey, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling sportsdb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sportsdb error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding sportsdb response: %w", err)
	}
	return data, nil
}
