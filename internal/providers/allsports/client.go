// Package allsports adapts the AllSports-style raw API to the common
// provider envelope. The upstream exposes a single endpoint where a
// "met" query parameter selects the operation, and always answers HTTP
// 200 with {"success":0|1,"result":...}, so failure and "no data" both
// hide behind a structurally-successful response.
package allsports

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
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/fields"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

const (
	// ProviderName is the routing-policy key for this adapter.
	ProviderName = "allsports"

	// DefaultBaseURL is the football endpoint; every operation goes here.
	DefaultBaseURL = "https://apiv2.allsportsapi.com/football"

	listCacheTTL = time.Hour
)

// wellKnownLeagues maps names to AllSports league keys when the
// league-list search yields nothing.
var wellKnownLeagues = map[string]string{
	"premier league":   "152",
	"la liga":          "302",
	"serie a":          "207",
	"bundesliga":       "175",
	"ligue 1":          "168",
	"champions league": "3",
}

// Client is the AllSports adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	leagues   *resolve.Resolver
	teams     *resolve.Resolver
	listCache *cache.TTLCache
}

// New creates the adapter.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
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

// Call executes one intent against AllSports.
func (c *Client) Call(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	switch intent {
	case models.IntentEventsList:
		return c.fixtures(ctx, intent, args)
	case models.IntentEventGet:
		return c.eventGet(ctx, intent, args)
	case models.IntentLivescores:
		return c.livescores(ctx, intent, args)
	case models.IntentTeamsList:
		return c.teamsList(ctx, intent, args)
	case models.IntentTeamGet:
		return c.teamGet(ctx, intent, args)
	case models.IntentPlayersList:
		return c.playersList(ctx, intent, args)
	case models.IntentH2H:
		return c.headToHead(ctx, intent, args)
	case models.IntentLeagueTable:
		return c.standings(ctx, intent, args)
	case models.IntentLeaguesList:
		return c.leaguesList(ctx, intent)
	case models.IntentCountriesList:
		return c.countriesList(ctx, intent)
	case models.IntentOddsList:
		return c.odds(ctx, intent, args)
	default:
		return models.Failure(intent, models.ErrUpstream,
			fmt.Sprintf("allsports does not support intent %s", intent), nil)
	}
}

func (c *Client) fixtures(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	date, ok := providers.StringArg(args, "date")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "date is required", nil)
	}

	query := url.Values{"from": {date}, "to": {date}}
	resp := models.Success(intent, nil)

	if leagueID, ok := providers.StringArg(args, "leagueId"); ok {
		query.Set("leagueId", leagueID)
	} else if leagueName, ok := providers.StringArg(args, "leagueName"); ok {
		leagueID, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", leagueID)
		query.Set("leagueId", leagueID)
	}
	if teamID, ok := providers.StringArg(args, "teamId"); ok {
		query.Set("teamId", teamID)
	}

	data, errInfo := c.call(ctx, "Fixtures", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

// eventGet has no dedicated operation upstream: a Fixtures call filtered
// by match ID plays that role.
func (c *Client) eventGet(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	eventID, ok := providers.StringArg(args, "eventId", "id", "matchId")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "eventId is required", nil)
	}

	data, errInfo := c.call(ctx, "Fixtures", url.Values{"matchId": {eventID}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) livescores(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	query := url.Values{}
	if leagueID, ok := providers.StringArg(args, "leagueId"); ok {
		query.Set("leagueId", leagueID)
	}

	data, errInfo := c.call(ctx, "Livescore", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) teamsList(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)
	query := url.Values{}

	if leagueID, ok := providers.StringArg(args, "leagueId"); ok {
		query.Set("leagueId", leagueID)
	} else if leagueName, ok := providers.StringArg(args, "leagueName"); ok {
		leagueID, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", leagueID)
		query.Set("leagueId", leagueID)
	} else {
		return models.Failure(intent, models.ErrMissingArg, "leagueId or leagueName is required", nil)
	}

	data, errInfo := c.call(ctx, "Teams", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) teamGet(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	if teamID, ok := providers.StringArg(args, "teamId"); ok {
		data, errInfo := c.call(ctx, "Teams", url.Values{"teamId": {teamID}})
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		return models.Success(intent, data)
	}

	teamName, ok := providers.StringArg(args, "teamName")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "teamId or teamName is required", nil)
	}
	data, errInfo := c.call(ctx, "Teams", url.Values{"teamName": {teamName}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
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

	data, errInfo := c.call(ctx, "Players", url.Values{"teamId": {teamID}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

// headToHead composes the upstream's compound "{idA}-{idB}" parameter.
// Explicit IDs win; otherwise both team names are resolved independently
// first.
func (c *Client) headToHead(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	idA, okA := providers.StringArg(args, "teamAId", "firstTeamId")
	idB, okB := providers.StringArg(args, "teamBId", "secondTeamId")

	if !okA || !okB {
		nameA, namedA := providers.StringArg(args, "teamA", "teamAName")
		nameB, namedB := providers.StringArg(args, "teamB", "teamBName")
		if !namedA || !namedB {
			return models.Failure(intent, models.ErrMissingArg,
				"h2h requires two team IDs or two team names", nil)
		}

		resolvedA, errInfo := c.teams.Resolve(ctx, nameA)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resolvedB, errInfo := c.teams.Resolve(ctx, nameB)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		idA, idB = resolvedA, resolvedB
		resp.SetResolved("teamAId", idA)
		resp.SetResolved("teamBId", idB)
	}

	compound := fmt.Sprintf("%s-%s", idA, idB)
	resp.SetResolved("h2h", compound)

	data, errInfo := c.call(ctx, "H2H", url.Values{"h2h": {compound}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) standings(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
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

	data, errInfo := c.call(ctx, "Standings", url.Values{"leagueId": {leagueID}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) leaguesList(ctx context.Context, intent models.Intent) *models.Response {
	data, errInfo := c.cachedCall(ctx, "Leagues")
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) countriesList(ctx context.Context, intent models.Intent) *models.Response {
	data, errInfo := c.cachedCall(ctx, "Countries")
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) odds(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	query := url.Values{}
	if matchID, ok := providers.StringArg(args, "matchId", "eventId"); ok {
		query.Set("matchId", matchID)
	} else if date, ok := providers.StringArg(args, "date"); ok {
		query.Set("from", date)
		query.Set("to", date)
	} else {
		return models.Failure(intent, models.ErrMissingArg, "matchId or date is required", nil)
	}

	data, errInfo := c.call(ctx, "Odds", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

// searchLeagues backs the league resolver from the (cached) Leagues
// list.
func (c *Client) searchLeagues(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, errInfo := c.cachedCall(ctx, "Leagues")
	if errInfo != nil {
		return nil, fmt.Errorf("%s: %s", errInfo.Code, errInfo.Message)
	}
	return candidatesFromResult(data, "league_key", "league_name"), nil
}

// searchTeams backs the team resolver via the upstream's name filter.
func (c *Client) searchTeams(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, errInfo := c.call(ctx, "Teams", url.Values{"teamName": {name}})
	if errInfo != nil {
		if errInfo.Code == models.ErrUpstreamEmpty {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %s", errInfo.Code, errInfo.Message)
	}
	return candidatesFromResult(data, "team_key", "team_name"), nil
}

func candidatesFromResult(data map[string]interface{}, idKey, nameKey string) []resolve.Candidate {
	result, _ := data["result"].([]interface{})
	candidates := make([]resolve.Candidate, 0, len(result))
	for _, raw := range result {
		record, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id := ""
		if value, ok := record[idKey]; ok && value != nil {
			id = fields.AsString(value)
		}
		name, _ := record[nameKey].(string)
		if id == "" || name == "" {
			continue
		}
		candidates = append(candidates, resolve.Candidate{ID: id, Name: name})
	}
	return candidates
}

// cachedCall runs a rarely-changing list operation through the 1h cache.
func (c *Client) cachedCall(ctx context.Context, met string) (map[string]interface{}, *models.ErrorInfo) {
	if cached, fresh := c.listCache.Get(met); fresh {
		return cached.(map[string]interface{}), nil
	}
	data, errInfo := c.call(ctx, met, nil)
	if errInfo != nil {
		return nil, errInfo
	}
	c.listCache.Put(met, data, listCacheTTL)
	return data, nil
}

// call performs one operation. The upstream never uses HTTP status for
// its own failures, so success==1 is checked here; success==1 with the
// result present (even empty) is passed through so the router's
// emptiness predicate can judge it.
func (c *Client) call(ctx context.Context, met string, query url.Values) (map[string]interface{}, *models.ErrorInfo) {
	values := url.Values{"met": {met}, "APIkey": {c.apiKey}}
	for key, list := range query {
		for _, v := range list {
			values.Set(key, v)
		}
	}
	endpoint := c.baseURL + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrInternal, Message: fmt.Sprintf("creating request: %v", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrUpstream, Message: fmt.Sprintf("calling allsports: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.ErrorInfo{
			Code:    models.ErrUpstream,
			Message: fmt.Sprintf("allsports error: status=%d, body=%s", resp.StatusCode, string(body)),
		}
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrUpstream, Message: fmt.Sprintf("decoding allsports response: %v", err)}
	}

	if success, ok := data["success"].(float64); ok && success != 1 {
		return nil, &models.ErrorInfo{
			Code:    models.ErrUpstream,
			Message: fmt.Sprintf("allsports %s reported failure (success=%v)", met, success),
		}
	}
	return data, nil
}
