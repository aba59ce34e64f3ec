package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// A small stand-in for the TVDB v4 API. It serves one hard-coded series
// (id 100) with two seasons so the adapter can be exercised end to end
// without credentials: point tvdb.base_url at http://localhost:8090.
func main() {
	http.HandleFunc("/login", loginHandler)
	http.HandleFunc("/series/100/extended", seriesHandler)
	http.HandleFunc("/series/100/episodes/official", episodesHandler)
	http.HandleFunc("/series/100/artworks", artworksHandler)
	http.HandleFunc("/seasons/", seasonHandler)
	http.HandleFunc("/episodes/", episodeHandler)
	http.HandleFunc("/search", searchHandler)

	fmt.Println("Fake TVDB server starting on :8090")
	fmt.Println("Serves series 100 ('Static Drift') with seasons 1001 and 1002.")
	log.Fatal(http.ListenAndServe(":8090", nil))
}

func respond(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"success","data":%s}`, data)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"status":"failure","message":"NotFoundException"}`)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log.Printf("login from %s", r.RemoteAddr)
	respond(w, `{"token":"fake-token"}`)
}

func seriesHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("series extended: %s", r.URL.String())
	respond(w, `{
	  "id": 100, "name": "Static Drift", "overview": "A fake series for local testing.",
	  "image": "https://artworks.example/series/100/poster.jpg",
	  "firstAired": "2019-03-14", "score": 8123, "averageRuntime": 45,
	  "originalNetwork": {"id": 7, "name": "Acme TV", "country": "usa"},
	  "latestNetwork": {"id": 7, "name": "Acme TV", "country": "usa"},
	  "genres": [{"id": 1, "name": "Drama"}, {"id": 2, "name": "Science Fiction"}],
	  "remoteIds": [{"id": "tt9900001", "type": 2, "sourceName": "IMDB"},
	                {"id": "777001", "type": 12, "sourceName": "TheMovieDB.com"}],
	  "characters": [
	    {"id": 1, "name": "Mara Voss", "peopleId": 11, "personName": "Jane Example", "type": 3, "sort": 1,
	     "personImgURL": "https://artworks.example/people/11.jpg"},
	    {"id": 2, "name": "Elliot Crane", "peopleId": 12, "personName": "John Sample", "type": 3, "sort": 2},
	    {"id": 3, "name": "", "peopleId": 13, "personName": "Ada Director", "type": 1, "sort": 0},
	    {"id": 4, "name": "", "peopleId": 14, "personName": "Sam Writer", "type": 2, "sort": 0}
	  ],
	  "artworks": [
	    {"id": 501, "image": "https://artworks.example/series/100/poster.jpg", "thumbnail": "https://artworks.example/series/100/poster_t.jpg", "type": 2, "score": 100},
	    {"id": 502, "image": "https://artworks.example/series/100/fanart.jpg", "thumbnail": "https://artworks.example/series/100/fanart_t.jpg", "type": 3, "score": 90},
	    {"id": 503, "image": "https://artworks.example/series/100/banner.jpg", "thumbnail": "https://artworks.example/series/100/banner_t.jpg", "type": 1, "score": 80}
	  ],
	  "contentRatings": [{"id": 1, "name": "TV-14", "country": "usa", "description": ""}],
	  "seasons": [
	    {"id": 1001, "seriesId": 100, "number": 1, "image": "https://artworks.example/seasons/1001/poster.jpg", "type": {"id": 1, "name": "Aired Order", "type": "official"}},
	    {"id": 1002, "seriesId": 100, "number": 2, "image": "https://artworks.example/seasons/1002/poster.jpg", "type": {"id": 1, "name": "Aired Order", "type": "official"}},
	    {"id": 1003, "seriesId": 100, "number": 1, "type": {"id": 2, "name": "DVD Order", "type": "dvd"}}
	  ]
	}`)
}

func episodesHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("episodes: %s", r.URL.String())
	season, _ := strconv.Atoi(r.URL.Query().Get("season"))
	episode, _ := strconv.Atoi(r.URL.Query().Get("episodeNumber"))
	if season != 1 || episode < 1 || episode > 2 {
		respond(w, `{"series": {"id": 100}, "episodes": []}`)
		return
	}
	respond(w, fmt.Sprintf(`{"series": {"id": 100}, "episodes": [%s]}`, episodeJSON(episode)))
}

func artworksHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("artworks: %s", r.URL.String())
	respond(w, `{
	  "id": 100,
	  "artworks": [
	    {"id": 501, "image": "https://artworks.example/series/100/poster.jpg", "type": 2, "score": 100},
	    {"id": 502, "image": "https://artworks.example/series/100/fanart.jpg", "type": 3, "score": 90},
	    {"id": 504, "image": "https://artworks.example/series/100/logo.png", "type": 23, "score": 70}
	  ]
	}`)
}

func seasonHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("season: %s", r.URL.String())
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/seasons/"), "/extended")
	if id != "1001" {
		notFound(w)
		return
	}
	respond(w, fmt.Sprintf(`{
	  "id": 1001, "seriesId": 100, "number": 1,
	  "image": "https://artworks.example/seasons/1001/poster.jpg",
	  "type": {"id": 1, "name": "Aired Order", "type": "official"},
	  "episodes": [%s, %s],
	  "artwork": [
	    {"id": 601, "image": "https://artworks.example/seasons/1001/poster.jpg", "type": 7, "score": 100}
	  ]
	}`, episodeJSON(1), episodeJSON(2)))
}

func episodeHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("episode: %s", r.URL.String())
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/episodes/"), "/extended")
	n, err := strconv.Atoi(id)
	if err != nil || n < 2001 || n > 2002 {
		notFound(w)
		return
	}
	respond(w, fmt.Sprintf(`{
	  %s,
	  "characters": [
	    {"id": 9, "name": "Mara Voss", "peopleId": 11, "personName": "Jane Example", "type": 3, "sort": 1}
	  ],
	  "remoteIds": [{"id": "tt9900%03d", "type": 2, "sourceName": "IMDB"}]
	}`, strings.Trim(episodeJSON(n-2000), "{}"), n-2000))
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	log.Printf("search: %s", r.URL.String())
	query := strings.ToLower(r.URL.Query().Get("query"))
	if !strings.Contains("static drift", query) {
		respond(w, `[]`)
		return
	}
	respond(w, `[{
	  "objectID": "series-100", "tvdb_id": "100", "type": "series",
	  "name": "Static Drift", "year": "2019",
	  "overview": "A fake series for local testing.",
	  "image_url": "https://artworks.example/series/100/poster.jpg",
	  "primary_language": "eng"
	}]`)
}

func episodeJSON(n int) string {
	return fmt.Sprintf(`{
	  "id": %d, "seriesId": 100, "name": "Episode %d",
	  "aired": "2019-03-%02d", "runtime": 45,
	  "overview": "Fake episode %d.",
	  "image": "https://artworks.example/episodes/%d/still.jpg",
	  "number": %d, "seasonNumber": 1
	}`, 2000+n, n, 13+n, n, 2000+n, n)
}
